package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/matcher"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

var testBreeds = []registry.AliasBreed{
	{ID: "5001", Name: "Angus", TransboundaryID: "101", SpeciesID: "1", ISO3: "GBR"},
	{ID: "5003", Name: "Texel", TransboundaryID: "102", SpeciesID: "9"},
}

func speciesNames(id string) string {
	return map[string]string{"1": "Cattle"}[id]
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		f, err := ParseFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, Format(strings.ToLower(s)), f)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, testBreeds))

	var back []registry.AliasBreed
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, testBreeds, back)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, testBreeds[0]))

	out := buf.String()
	assert.Contains(t, out, "name: Angus")
	assert.Contains(t, out, "iso3: GBR")
}

func TestTableFormatter(t *testing.T) {
	t.Run("alias breeds", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, AliasToTableData(testBreeds, speciesNames, false)))

		out := buf.String()
		assert.Contains(t, out, "Angus")
		assert.Contains(t, out, "Cattle")
		assert.Contains(t, out, "9", "unknown species falls back to its id")
		assert.NotContains(t, out, "GBR")
	})

	t.Run("wide alias breeds", func(t *testing.T) {
		data := AliasToTableData(testBreeds, nil, true)
		assert.Len(t, data.Headers, 5)
		assert.Equal(t, []string{"5001", "101", "Angus", "1", "GBR"}, data.Rows[0])
	})

	t.Run("rejects values that are not Data", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewFormatter(FormatWide).Format(&buf, []registry.Species{{ID: "1", Name: "Cattle"}})
		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, buf.String())
	})

	t.Run("species", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, SpeciesToTableData([]registry.Species{
			{ID: "1", Name: "Cattle"},
			{ID: "14", Name: "Sheep"},
		})))
		assert.Contains(t, buf.String(), "Sheep")
	})

	t.Run("stats", func(t *testing.T) {
		data := StatsToTableData(matcher.Stats{Total: 5, Ignored: 1, Eligible: 4, Matched: 3})
		assert.Equal(t, []string{"Match rate", "75.0%"}, data.Rows[len(data.Rows)-1])
	})
}
