package tsv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

const sample = "record_id\tterm_label\treference_name\treference_species_name\tignore_flag\tnotes\n" +
	"ID\tLABEL\tA dadis_name\tA dadis_species\t\t\n" +
	"VBO_1\tAngus (Cattle)\tAngus\tCattle\t\tNA\n" +
	"VBO_2\tTexel (Sheep)\tTexel\tSheep\tduplicate\tnull\n" +
	"VBO_3\tMerino (Sheep)\tMerino\tSheep\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "breeds.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func strptr(s string) *string { return &s }

func TestRead(t *testing.T) {
	table, err := Read(writeFile(t, sample), records.DefaultColumns())
	require.NoError(t, err)

	assert.Equal(t, []string{"record_id", "term_label", "reference_name", "reference_species_name", "ignore_flag", "notes"}, table.Header)
	assert.Equal(t, []string{"ID", "LABEL", "A dadis_name", "A dadis_species", "", ""}, table.Metadata)
	require.Equal(t, 3, table.Len())

	first := table.Records[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, "VBO_1", first.RecordID)
	assert.Equal(t, "Angus", first.ReferenceName)
	assert.Equal(t, "Cattle", first.ReferenceSpeciesName)
	assert.False(t, first.Ignored())
	assert.Equal(t, "NA", first.Cells[5], "cells are not coerced")

	assert.True(t, table.Records[1].Ignored())
	assert.Equal(t, "null", table.Records[1].Cells[5])

	short := table.Records[2]
	assert.Len(t, short.Cells, 6, "short rows are padded")
	assert.Empty(t, short.IgnoreFlag)
}

func TestReadBOM(t *testing.T) {
	table, err := Read(writeFile(t, "\ufeff"+sample), records.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, "record_id", table.Header[0])
}

func TestReadCustomColumns(t *testing.T) {
	content := "vbo_id\tterm_label\tdadis_name\tdadis_species_name\tto_be_ignored\n" +
		"\t\t\t\t\n" +
		"VBO_9\tAngus\tAngus\tCattle\t\n"
	cols := records.Columns{
		RecordID:             "vbo_id",
		TermLabel:            "term_label",
		ReferenceName:        "dadis_name",
		ReferenceSpeciesName: "dadis_species_name",
		IgnoreFlag:           "to_be_ignored",
	}

	table, err := Read(writeFile(t, content), cols)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "VBO_9", table.Records[0].RecordID)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "table is empty"},
		{"no metadata", "record_id\tterm_label\treference_name\treference_species_name\tignore_flag\n", "no metadata row"},
		{"missing columns", "record_id\tterm_label\n\t\n", "missing required columns: reference_name, reference_species_name, ignore_flag"},
		{"duplicate id", strings.Replace(sample, "VBO_2", "VBO_1", 1), `record id "VBO_1" repeated in data rows 1 and 2`},
		{"empty id", strings.Replace(sample, "VBO_3", "", 1), "empty record id in data row 3"},
		{"overlong row", sample + "VBO_4\ta\tb\tc\td\te\tsurplus\n", "data row 4 has 7 cells"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Read(writeFile(t, tt.content), records.DefaultColumns())
			assert.Nil(t, table)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %T: %v", err, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.tsv"), records.DefaultColumns())
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})
}

func TestReadTrailingTabs(t *testing.T) {
	table, err := Read(writeFile(t, sample+"VBO_4\ta\tb\tc\td\te\t\t\n"), records.DefaultColumns())
	require.NoError(t, err)
	assert.Len(t, table.Records[3].Cells, 6)
}

func TestWriteRoundTrip(t *testing.T) {
	in := writeFile(t, sample)
	table, err := Read(in, records.DefaultColumns())
	require.NoError(t, err)

	augmented := make([]records.AugmentedRecord, table.Len())
	for i, r := range table.Records {
		augmented[i].SourceRecord = r
	}
	augmented[0].TransboundaryID = strptr("TB001")

	out := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, Write(out, table, augmented, "transboundary_id"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"record_id\tterm_label\treference_name\treference_species_name\tignore_flag\tnotes\ttransboundary_id\n"+
			"ID\tLABEL\tA dadis_name\tA dadis_species\t\t\t\n"+
			"VBO_1\tAngus (Cattle)\tAngus\tCattle\t\tNA\tTB001\n"+
			"VBO_2\tTexel (Sheep)\tTexel\tSheep\tduplicate\tnull\t\n"+
			"VBO_3\tMerino (Sheep)\tMerino\tSheep\t\t\t\n",
		string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// the written table reads back with the same records
	again, err := Read(out, records.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, table.Len(), again.Len())
	for i := range table.Records {
		assert.Equal(t, table.Records[i].RecordID, again.Records[i].RecordID)
	}
}

func TestWriteInPlace(t *testing.T) {
	path := writeFile(t, sample)
	table, err := Read(path, records.DefaultColumns())
	require.NoError(t, err)

	augmented := make([]records.AugmentedRecord, table.Len())
	for i, r := range table.Records {
		augmented[i] = records.AugmentedRecord{SourceRecord: r}
	}
	require.NoError(t, Write(path, table, augmented, "transboundary_id"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "record_id\t"))
}

func TestWriteFailureLeavesDestination(t *testing.T) {
	path := writeFile(t, sample)
	table, err := Read(path, records.DefaultColumns())
	require.NoError(t, err)

	err = Write(path, table, nil, "transboundary_id")
	assert.True(t, errors.IsValidationError(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))

	err = Write(filepath.Join(t.TempDir(), "missing", "out.tsv"), table, make([]records.AugmentedRecord, 3), "x")
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestEncodeQuoting(t *testing.T) {
	table := &records.Table{
		Header:   []string{"record_id", "label"},
		Metadata: []string{"", ""},
	}
	aug := []records.AugmentedRecord{{
		SourceRecord: records.SourceRecord{RecordID: "VBO_1", Cells: []string{"VBO_1", "has\ttab"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, table, aug, "tb"))

	back, err := Decode(&buf, records.Columns{
		RecordID: "record_id", TermLabel: "label", ReferenceName: "label",
		ReferenceSpeciesName: "label", IgnoreFlag: "label",
	})
	require.NoError(t, err)
	assert.Equal(t, "has\ttab", back.Records[0].TermLabel)
}

func TestWriteKeepsCellsVerbatim(t *testing.T) {
	content := "record_id\tterm_label\treference_name\treference_species_name\tignore_flag\n" +
		"ID\tLABEL\t A dadis_name\tA dadis_species \t\\.\n" +
		"VBO_1\t Angus cattle\t Angus\tCattle\t\n"
	in := writeFile(t, content)
	table, err := Read(in, records.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, " A dadis_name", table.Metadata[2])

	augmented := []records.AugmentedRecord{{SourceRecord: table.Records[0]}}
	out := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, Write(out, table, augmented, "transboundary_id"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"record_id\tterm_label\treference_name\treference_species_name\tignore_flag\ttransboundary_id\n"+
			"ID\tLABEL\t A dadis_name\tA dadis_species \t\\.\t\n"+
			"VBO_1\t Angus cattle\t Angus\tCattle\t\t\n",
		string(data))
}

func TestQuote(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"plain", "plain"},
		{" leading space", " leading space"},
		{"", ""},
		{"has\ttab", "\"has\ttab\""},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{"carriage\rreturn", "\"carriage\rreturn\""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, quote(tt.cell))
		})
	}
}
