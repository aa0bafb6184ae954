package registry

import "context"

// SpeciesFetcher fetches the full species list.
type SpeciesFetcher interface {
	FetchSpecies(ctx context.Context) ([]Species, error)
}

// CanonicalFetcher fetches the canonical transboundary breed names.
type CanonicalFetcher interface {
	FetchCanonicalBreedNames(ctx context.Context) ([]CanonicalBreed, error)
}

// AliasFetcher fetches every breed name linked to a transboundary breed.
type AliasFetcher interface {
	FetchAllAliasBreeds(ctx context.Context) ([]AliasBreed, error)
}

// Provider is the complete reference registry capability set.
type Provider interface {
	SpeciesFetcher
	CanonicalFetcher
	AliasFetcher
}
