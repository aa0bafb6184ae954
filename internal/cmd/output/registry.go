package output

import (
	"fmt"
	"strconv"

	"github.com/vbo-tools/dadismatch/pkg/matcher"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// SpeciesToTableData converts species to table rows.
func SpeciesToTableData(species []registry.Species) Data {
	rows := make([][]string, 0, len(species))
	for _, s := range species {
		rows = append(rows, []string{s.ID, s.Name})
	}
	return Data{
		Headers:         []string{"ID", "Name"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// CanonicalToTableData converts canonical breed names to table rows.
// speciesName resolves species ids for display; nil shows raw ids only.
func CanonicalToTableData(breeds []registry.CanonicalBreed, speciesName func(string) string) Data {
	rows := make([][]string, 0, len(breeds))
	for _, b := range breeds {
		rows = append(rows, []string{b.TransboundaryID, b.Name, species(b.SpeciesID, speciesName)})
	}
	return Data{
		Headers:         []string{"Transboundary ID", "Name", "Species"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// AliasToTableData converts alias breeds to table rows. Wide output adds
// the breed id and country.
func AliasToTableData(breeds []registry.AliasBreed, speciesName func(string) string, wide bool) Data {
	headers := []string{"Transboundary ID", "Name", "Species"}
	align := []Align{AlignRight, AlignLeft, AlignLeft}
	if wide {
		headers = append([]string{"Breed ID"}, append(headers, "Country")...)
		align = append([]Align{AlignRight}, append(align, AlignLeft)...)
	}

	rows := make([][]string, 0, len(breeds))
	for _, b := range breeds {
		row := []string{b.TransboundaryID, b.Name, species(b.SpeciesID, speciesName)}
		if wide {
			row = append([]string{b.ID}, append(row, b.ISO3)...)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// StatsToTableData renders match statistics as a two-column summary.
func StatsToTableData(s matcher.Stats) Data {
	rows := [][]string{
		{"Records", strconv.Itoa(s.Total)},
		{"Ignored", strconv.Itoa(s.Ignored)},
		{"Eligible", strconv.Itoa(s.Eligible)},
		{"Matched", strconv.Itoa(s.Matched)},
		{"  canonical", strconv.Itoa(s.CanonicalMatches)},
		{"  alias", strconv.Itoa(s.AliasMatches)},
		{"Ambiguous", strconv.Itoa(s.Ambiguous)},
		{"Conflicts", strconv.Itoa(s.Conflicts)},
		{"Unmatched", strconv.Itoa(s.Unmatched)},
		{"Match rate", fmt.Sprintf("%.1f%%", 100*s.MatchRate())},
	}
	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func species(id string, name func(string) string) string {
	if name == nil {
		return id
	}
	if n := name(id); n != "" {
		return n
	}
	return id
}
