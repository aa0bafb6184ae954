package index

import (
	"context"

	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Species maps registry species ids to display names.
type Species struct {
	names map[string]string
}

// BuildSpecies fetches the species list and indexes it. Fetch errors are
// returned unchanged.
func BuildSpecies(ctx context.Context, fetcher registry.SpeciesFetcher) (*Species, error) {
	species, err := fetcher.FetchSpecies(ctx)
	if err != nil {
		return nil, err
	}
	return NewSpecies(species), nil
}

// NewSpecies indexes an already fetched species list. Species ids are unique
// in the registry; if one repeats, the last entry wins.
func NewSpecies(species []registry.Species) *Species {
	names := make(map[string]string, len(species))
	for _, s := range species {
		names[s.ID] = s.Name
	}
	return &Species{names: names}
}

// Lookup returns the display name for a species id.
func (s *Species) Lookup(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	name, ok := s.names[id]
	return name, ok
}

// Resolve returns the species name for id, null when id is unknown.
func (s *Species) Resolve(id string) SpeciesName {
	name, ok := s.Lookup(id)
	return SpeciesName{Name: name, Valid: ok}
}

// Len returns the number of indexed species.
func (s *Species) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
