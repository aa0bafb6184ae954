// Package records holds the source table model: the breed records read from
// the source registry and their augmented form carrying a resolved
// transboundary id.
package records

import (
	"fmt"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
)

// IgnoreDuplicate marks a record that is kept in output but never matched.
const IgnoreDuplicate = "duplicate"

// SourceRecord is one data row of the source table.
type SourceRecord struct {
	// Row is the 0-based position among data rows.
	Row int `json:"row" yaml:"row"`

	RecordID             string `json:"record_id" yaml:"record_id"`
	TermLabel            string `json:"term_label" yaml:"term_label"`
	ReferenceName        string `json:"reference_name" yaml:"reference_name"`
	ReferenceSpeciesName string `json:"reference_species_name" yaml:"reference_species_name"`
	IgnoreFlag           string `json:"ignore_flag,omitempty" yaml:"ignore_flag,omitempty"`

	// Cells are the row's original cells, every column, untouched.
	Cells []string `json:"-" yaml:"-"`
}

// Ignored reports whether the record is excluded from matching.
func (r SourceRecord) Ignored() bool {
	return r.IgnoreFlag == IgnoreDuplicate
}

// AugmentedRecord is a source record with its resolved transboundary id.
// A nil id means no confident match, or an ignored record.
type AugmentedRecord struct {
	SourceRecord
	TransboundaryID *string `json:"transboundary_id" yaml:"transboundary_id"`
}

// TransboundaryIDValue returns the id, or the empty string for null.
func (a AugmentedRecord) TransboundaryIDValue() string {
	if a.TransboundaryID == nil {
		return ""
	}
	return *a.TransboundaryID
}

// Columns names the source table columns the matcher reads.
type Columns struct {
	RecordID             string `mapstructure:"record_id" validate:"required"`
	TermLabel            string `mapstructure:"term_label" validate:"required"`
	ReferenceName        string `mapstructure:"reference_name" validate:"required"`
	ReferenceSpeciesName string `mapstructure:"reference_species_name" validate:"required"`
	IgnoreFlag           string `mapstructure:"ignore_flag" validate:"required"`
}

// DefaultColumns returns the standard column names.
func DefaultColumns() Columns {
	return Columns{
		RecordID:             constants.ColumnRecordID,
		TermLabel:            constants.ColumnTermLabel,
		ReferenceName:        constants.ColumnReferenceName,
		ReferenceSpeciesName: constants.ColumnReferenceSpeciesName,
		IgnoreFlag:           constants.ColumnIgnoreFlag,
	}
}

// Required lists the column names in table order of importance.
func (c Columns) Required() []string {
	return []string{c.RecordID, c.TermLabel, c.ReferenceName, c.ReferenceSpeciesName, c.IgnoreFlag}
}

// Table is a parsed source table: the column-name row, the metadata row,
// and the data rows in file order.
type Table struct {
	Header   []string
	Metadata []string
	Records  []SourceRecord
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// Validate checks that every record has a non-empty, unique record id,
// the join key of a run.
func (t *Table) Validate(column string) error {
	seen := make(map[string]int, len(t.Records))
	for _, r := range t.Records {
		if r.RecordID == "" {
			return errors.NewValidationError(column, r.Row, fmt.Sprintf("empty record id in data row %d", r.Row+1))
		}
		if first, dup := seen[r.RecordID]; dup {
			return errors.NewValidationError(column, r.RecordID,
				fmt.Sprintf("record id %q repeated in data rows %d and %d", r.RecordID, first+1, r.Row+1))
		}
		seen[r.RecordID] = r.Row
	}
	return nil
}
