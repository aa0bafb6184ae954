// Package tsv reads and writes the tab-separated breed tables: a row of
// column names, a metadata row, then one row per record. Cell text is never
// interpreted, so "NA" or "null" survive a round trip unchanged.
package tsv

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Read parses the table at path and maps the configured columns onto
// source records. Missing columns and empty or repeated record ids are
// validation errors.
func Read(path string, columns records.Columns) (*records.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	table, err := Decode(f, columns)
	if err != nil {
		var parseErr *errors.ParseError
		if stderrors.As(err, &parseErr) && parseErr.File == "" {
			parseErr.File = path
		}
		return nil, err
	}
	return table, nil
}

// Decode parses a table from r. See Read.
func Decode(r io.Reader, columns records.Columns) (*records.Table, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("header", nil, "table is empty")
	}
	if err != nil {
		return nil, wrapCSV(err)
	}
	header = clone(header)

	pos, err := locate(header, columns)
	if err != nil {
		return nil, err
	}

	metadata, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("metadata", nil, "table has no metadata row")
	}
	if err != nil {
		return nil, wrapCSV(err)
	}

	table := &records.Table{
		Header:   header,
		Metadata: clone(metadata),
	}

	for row := 0; ; row++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSV(err)
		}
		cells, err = fit(cells, len(header), row)
		if err != nil {
			return nil, err
		}

		table.Records = append(table.Records, records.SourceRecord{
			Row:                  row,
			RecordID:             cell(cells, pos.recordID),
			TermLabel:            cell(cells, pos.termLabel),
			ReferenceName:        cell(cells, pos.referenceName),
			ReferenceSpeciesName: cell(cells, pos.referenceSpecies),
			IgnoreFlag:           cell(cells, pos.ignoreFlag),
			Cells:                cells,
		})
	}

	if err := table.Validate(columns.RecordID); err != nil {
		return nil, err
	}
	return table, nil
}

// newReader strips a leading UTF-8 byte order mark and configures a
// tab-separated reader that tolerates ragged rows and stray quotes.
func newReader(r io.Reader) *csv.Reader {
	bomless := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	cr := csv.NewReader(bomless)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

type positions struct {
	recordID, termLabel, referenceName, referenceSpecies, ignoreFlag int
}

// locate finds every configured column. The first of repeated names wins.
func locate(header []string, columns records.Columns) (positions, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}

	pos := positions{
		recordID:         find(columns.RecordID),
		termLabel:        find(columns.TermLabel),
		referenceName:    find(columns.ReferenceName),
		referenceSpecies: find(columns.ReferenceSpeciesName),
		ignoreFlag:       find(columns.IgnoreFlag),
	}
	if len(missing) > 0 {
		return positions{}, errors.NewValidationError("header", missing,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return pos, nil
}

// fit pads short rows to width. Longer rows are accepted only when the
// surplus cells are empty, as left by trailing tabs.
func fit(cells []string, width, row int) ([]string, error) {
	out := make([]string, max(width, len(cells)))
	copy(out, cells)
	for i := width; i < len(out); i++ {
		if out[i] != "" {
			return nil, errors.NewValidationError("row", row,
				fmt.Sprintf("data row %d has %d cells, header has %d", row+1, len(cells), width))
		}
	}
	return out[:width], nil
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func wrapCSV(err error) error {
	var csvErr *csv.ParseError
	if stderrors.As(err, &csvErr) {
		return &errors.ParseError{
			Format:  "tsv",
			Line:    csvErr.Line,
			Message: csvErr.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapIO("read", "table", err)
}
