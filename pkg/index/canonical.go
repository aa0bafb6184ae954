package index

import (
	"context"

	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Canonical maps (breed name, species name) to a transboundary id.
type Canonical struct {
	ids        map[Key]string
	unresolved int
	collisions int
	skipped    int
}

// BuildCanonical fetches canonical breed names and indexes them against the
// species index. Fetch errors are returned unchanged.
func BuildCanonical(ctx context.Context, fetcher registry.CanonicalFetcher, species *Species) (*Canonical, error) {
	breeds, err := fetcher.FetchCanonicalBreedNames(ctx)
	if err != nil {
		return nil, err
	}
	return NewCanonical(breeds, species), nil
}

// NewCanonical indexes already fetched canonical names.
//
// The registry guarantees one canonical name per (name, species id), so no
// deduplication happens here. Should two entries still land on the same key
// the first one is kept and the clash is counted in Collisions. Entries
// without a transboundary id are skipped, so their names fall through to
// the alias index.
func NewCanonical(breeds []registry.CanonicalBreed, species *Species) *Canonical {
	c := &Canonical{ids: make(map[Key]string, len(breeds))}
	for _, b := range breeds {
		if b.TransboundaryID == "" {
			c.skipped++
			continue
		}
		sp := species.Resolve(b.SpeciesID)
		if !sp.Valid {
			c.unresolved++
		}
		key := Key{Breed: b.Name, Species: sp}
		if _, exists := c.ids[key]; exists {
			c.collisions++
			continue
		}
		c.ids[key] = b.TransboundaryID
	}
	return c
}

// Lookup returns the transboundary id for key. A miss is not an error.
func (c *Canonical) Lookup(key Key) (string, bool) {
	if c == nil {
		return "", false
	}
	id, ok := c.ids[key]
	return id, ok
}

// Len returns the number of indexed keys.
func (c *Canonical) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// Unresolved returns how many entries referenced an unknown species id.
func (c *Canonical) Unresolved() int {
	if c == nil {
		return 0
	}
	return c.unresolved
}

// Collisions returns how many entries repeated an already indexed key.
func (c *Canonical) Collisions() int {
	if c == nil {
		return 0
	}
	return c.collisions
}

// Skipped returns how many entries had no transboundary id.
func (c *Canonical) Skipped() int {
	if c == nil {
		return 0
	}
	return c.skipped
}
