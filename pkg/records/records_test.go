package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

func TestSourceRecord_Ignored(t *testing.T) {
	assert.True(t, records.SourceRecord{IgnoreFlag: "duplicate"}.Ignored())
	assert.False(t, records.SourceRecord{IgnoreFlag: ""}.Ignored())
	assert.False(t, records.SourceRecord{IgnoreFlag: "Duplicate"}.Ignored())
	assert.False(t, records.SourceRecord{IgnoreFlag: "obsolete"}.Ignored())
}

func TestAugmentedRecord_TransboundaryIDValue(t *testing.T) {
	id := "TB001"
	assert.Equal(t, "TB001", records.AugmentedRecord{TransboundaryID: &id}.TransboundaryIDValue())
	assert.Equal(t, "", records.AugmentedRecord{}.TransboundaryIDValue())
}

func TestColumns(t *testing.T) {
	cols := records.DefaultColumns()
	assert.Equal(t, []string{"record_id", "term_label", "reference_name", "reference_species_name", "ignore_flag"}, cols.Required())
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr string
	}{
		{name: "unique ids", ids: []string{"VBO:1", "VBO:2"}},
		{name: "empty table", ids: nil},
		{name: "empty id", ids: []string{"VBO:1", ""}, wantErr: "empty record id in data row 2"},
		{name: "repeated id", ids: []string{"VBO:1", "VBO:2", "VBO:1"}, wantErr: `record id "VBO:1" repeated in data rows 1 and 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &records.Table{}
			for i, id := range tt.ids {
				table.Records = append(table.Records, records.SourceRecord{Row: i, RecordID: id})
			}

			err := table.Validate("record_id")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
