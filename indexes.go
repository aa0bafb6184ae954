package dadismatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/index"
	"github.com/vbo-tools/dadismatch/pkg/logging"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Indexes are the lookup structures of one run. They are never modified
// after BuildIndexes returns.
type Indexes struct {
	Species   *index.Species
	Canonical *index.Canonical
	Alias     *index.Alias
}

// IndexStats describes the registry data a run matched against.
type IndexStats struct {
	Species             int `json:"species" yaml:"species"`
	CanonicalNames      int `json:"canonical_names" yaml:"canonical_names"`
	CanonicalCollisions int `json:"canonical_collisions" yaml:"canonical_collisions"`
	CanonicalSkipped    int `json:"canonical_skipped" yaml:"canonical_skipped"`
	AliasKeys           int `json:"alias_keys" yaml:"alias_keys"`
	AliasEntries        int `json:"alias_entries" yaml:"alias_entries"`
	AliasDuplicates     int `json:"alias_duplicates" yaml:"alias_duplicates"`
	AliasSkipped        int `json:"alias_skipped" yaml:"alias_skipped"`
	AmbiguousKeys       int `json:"ambiguous_keys" yaml:"ambiguous_keys"`
	UnresolvedSpecies   int `json:"unresolved_species" yaml:"unresolved_species"`
}

// Stats summarises the indexes.
func (i *Indexes) Stats() IndexStats {
	as := i.Alias.Stats()
	return IndexStats{
		Species:             i.Species.Len(),
		CanonicalNames:      i.Canonical.Len(),
		CanonicalCollisions: i.Canonical.Collisions(),
		CanonicalSkipped:    i.Canonical.Skipped(),
		AliasKeys:           i.Alias.Len(),
		AliasEntries:        as.Entries,
		AliasDuplicates:     as.Duplicates,
		AliasSkipped:        as.Skipped,
		AmbiguousKeys:       len(i.Alias.AmbiguousKeys()),
		UnresolvedSpecies:   i.Canonical.Unresolved() + as.Unresolved,
	}
}

// BuildIndexes fetches species first, then canonical names and alias
// breeds concurrently. The first failure cancels the other fetch; any
// failure is returned as a *errors.RegistryError.
func BuildIndexes(ctx context.Context, provider registry.Provider) (*Indexes, error) {
	logger := logging.FromContext(ctx)

	species, err := index.BuildSpecies(ctx, provider)
	if err != nil {
		return nil, errors.WrapRegistry(constants.RegistryName, registry.OpSpecies, err)
	}
	logger.Debug().Int("species", species.Len()).Msg("Species index built")

	idx := &Indexes{Species: species}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := index.BuildCanonical(gctx, provider, species)
		if err != nil {
			return errors.WrapRegistry(constants.RegistryName, registry.OpCanonical, err)
		}
		idx.Canonical = c
		return nil
	})
	g.Go(func() error {
		a, err := index.BuildAlias(gctx, provider, species)
		if err != nil {
			return errors.WrapRegistry(constants.RegistryName, registry.OpAliases, err)
		}
		idx.Alias = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := idx.Stats()
	logger.Info().
		Int("species", stats.Species).
		Int("canonical", stats.CanonicalNames).
		Int("alias_keys", stats.AliasKeys).
		Int("ambiguous_keys", stats.AmbiguousKeys).
		Msg("Registry indexes built")
	if stats.CanonicalCollisions > 0 {
		logger.Warn().Int("collisions", stats.CanonicalCollisions).Msg("Canonical names repeated within a species; first entry kept")
	}

	return idx, nil
}
