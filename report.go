package dadismatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/matcher"
)

// Report summarises one run.
type Report struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	Input     string             `json:"input,omitempty" yaml:"input,omitempty"`
	Output    string             `json:"output,omitempty" yaml:"output,omitempty"`
	Stats     matcher.Stats      `json:"stats" yaml:"stats"`
	Indexes   IndexStats         `json:"indexes" yaml:"indexes"`
	Ambiguous []string           `json:"ambiguous" yaml:"ambiguous"`
	Conflicts []matcher.Conflict `json:"conflicts" yaml:"conflicts"`
}

// WriteReport writes r to path as JSON when path ends in .json and as
// YAML otherwise.
func WriteReport(path string, r *Report) error {
	var (
		data   []byte
		err    error
		format = "yaml"
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.MarshalWithOptions(r, yaml.Indent(2), yaml.IndentSequence(false))
	}
	if err != nil {
		return errors.WrapParse(format, path, err)
	}

	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}
