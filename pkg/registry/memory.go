package registry

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-memory Provider. Each fetch returns a copy of the stored
// data, or the configured error for that operation.
type Memory struct {
	mu sync.Mutex

	species   []Species
	canonical []CanonicalBreed
	aliases   []AliasBreed

	speciesErr   error
	canonicalErr error
	aliasErr     error

	calls map[string]int
}

// Fetch operation names, as counted by Memory.Calls.
const (
	OpSpecies   = "species"
	OpCanonical = "canonical names"
	OpAliases   = "alias breeds"
)

var _ Provider = (*Memory)(nil)

// MemoryOption configures a Memory provider.
type MemoryOption func(*Memory)

// WithSpecies sets the species list.
func WithSpecies(species ...Species) MemoryOption {
	return func(m *Memory) { m.species = append(m.species, species...) }
}

// WithCanonical sets the canonical breed names.
func WithCanonical(breeds ...CanonicalBreed) MemoryOption {
	return func(m *Memory) { m.canonical = append(m.canonical, breeds...) }
}

// WithAliases sets the alias breed names.
func WithAliases(breeds ...AliasBreed) MemoryOption {
	return func(m *Memory) { m.aliases = append(m.aliases, breeds...) }
}

// WithError makes the named operation fail with err.
func WithError(op string, err error) MemoryOption {
	return func(m *Memory) {
		switch op {
		case OpSpecies:
			m.speciesErr = err
		case OpCanonical:
			m.canonicalErr = err
		case OpAliases:
			m.aliasErr = err
		}
	}
}

// NewMemory creates an in-memory registry.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{calls: make(map[string]int)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchSpecies implements SpeciesFetcher.
func (m *Memory) FetchSpecies(ctx context.Context) ([]Species, error) {
	if err := m.record(ctx, OpSpecies); err != nil {
		return nil, err
	}
	if m.speciesErr != nil {
		return nil, m.speciesErr
	}
	return slices.Clone(m.species), nil
}

// FetchCanonicalBreedNames implements CanonicalFetcher.
func (m *Memory) FetchCanonicalBreedNames(ctx context.Context) ([]CanonicalBreed, error) {
	if err := m.record(ctx, OpCanonical); err != nil {
		return nil, err
	}
	if m.canonicalErr != nil {
		return nil, m.canonicalErr
	}
	return slices.Clone(m.canonical), nil
}

// FetchAllAliasBreeds implements AliasFetcher.
func (m *Memory) FetchAllAliasBreeds(ctx context.Context) ([]AliasBreed, error) {
	if err := m.record(ctx, OpAliases); err != nil {
		return nil, err
	}
	if m.aliasErr != nil {
		return nil, m.aliasErr
	}
	return slices.Clone(m.aliases), nil
}

// Calls returns how many times op was fetched.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *Memory) record(ctx context.Context, op string) error {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
	return ctx.Err()
}
