package index

import (
	"cmp"
	"context"
	"slices"

	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Alias maps (breed name, species name) to the transboundary ids that use
// the name. A key whose group holds more than one distinct id is ambiguous.
type Alias struct {
	groups     map[Key][]string
	entries    int
	duplicates int
	skipped    int
	unresolved int
}

// BuildAlias fetches every alias breed name and indexes it against the
// species index. Fetch errors are returned unchanged.
func BuildAlias(ctx context.Context, fetcher registry.AliasFetcher, species *Species) (*Alias, error) {
	breeds, err := fetcher.FetchAllAliasBreeds(ctx)
	if err != nil {
		return nil, err
	}
	return NewAlias(breeds, species), nil
}

// aliasTriple identifies an alias row for deduplication.
type aliasTriple struct {
	speciesID       string
	name            string
	transboundaryID string
}

// NewAlias indexes already fetched alias names. Rows repeating the same
// (species id, name, transboundary id) collapse to one. Each group is
// ordered by (transboundary id, name).
//
// Rows without a transboundary id are skipped and counted in Stats. They
// never contribute a candidate, so a name shared by one linked breed and
// any number of unlinked ones resolves to the linked breed rather than
// being ambiguous.
func NewAlias(breeds []registry.AliasBreed, species *Species) *Alias {
	a := &Alias{groups: make(map[Key][]string)}

	type candidate struct {
		id   string
		name string
	}
	grouped := make(map[Key][]candidate)
	seen := make(map[aliasTriple]struct{}, len(breeds))

	for _, b := range breeds {
		if b.TransboundaryID == "" {
			a.skipped++
			continue
		}
		triple := aliasTriple{speciesID: b.SpeciesID, name: b.Name, transboundaryID: b.TransboundaryID}
		if _, dup := seen[triple]; dup {
			a.duplicates++
			continue
		}
		seen[triple] = struct{}{}
		a.entries++

		sp := species.Resolve(b.SpeciesID)
		if !sp.Valid {
			a.unresolved++
		}
		key := Key{Breed: b.Name, Species: sp}
		grouped[key] = append(grouped[key], candidate{id: b.TransboundaryID, name: b.Name})
	}

	for key, cands := range grouped {
		slices.SortFunc(cands, func(x, y candidate) int {
			return cmp.Or(cmp.Compare(x.id, y.id), cmp.Compare(x.name, y.name))
		})
		ids := make([]string, len(cands))
		for i, c := range cands {
			ids[i] = c.id
		}
		a.groups[key] = ids
	}

	return a
}

// Candidates returns the ordered candidate ids for key, repeats included.
func (a *Alias) Candidates(key Key) []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.groups[key])
}

// Distinct returns the ordered distinct candidate ids for key.
func (a *Alias) Distinct(key Key) []string {
	if a == nil {
		return nil
	}
	// candidates are sorted, so Compact removes every repeat
	return slices.Compact(slices.Clone(a.groups[key]))
}

// Ambiguous reports whether key maps to more than one distinct id.
func (a *Alias) Ambiguous(key Key) bool {
	return len(a.Distinct(key)) > 1
}

// AmbiguousKeys returns every ambiguous key in a stable order.
func (a *Alias) AmbiguousKeys() []Key {
	if a == nil {
		return nil
	}
	var keys []Key
	for key := range a.groups {
		if a.Ambiguous(key) {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Len returns the number of indexed keys.
func (a *Alias) Len() int {
	if a == nil {
		return 0
	}
	return len(a.groups)
}

// AliasStats summarises how an Alias index was built.
type AliasStats struct {
	Entries    int // rows kept after deduplication
	Duplicates int // rows collapsed as exact repeats
	Skipped    int // rows without a transboundary id
	Unresolved int // kept rows with an unknown species id
}

// Stats returns construction counters.
func (a *Alias) Stats() AliasStats {
	if a == nil {
		return AliasStats{}
	}
	return AliasStats{
		Entries:    a.entries,
		Duplicates: a.duplicates,
		Skipped:    a.skipped,
		Unresolved: a.unresolved,
	}
}
