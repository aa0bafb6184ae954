package registry

// Species is a reference registry species with its display name.
type Species struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CanonicalBreed is the single preferred name of a transboundary breed.
// The registry guarantees at most one entry per (Name, SpeciesID).
type CanonicalBreed struct {
	TransboundaryID string `json:"transboundary_id" yaml:"transboundary_id"`
	Name            string `json:"name" yaml:"name"`
	SpeciesID       string `json:"species_id" yaml:"species_id"`
}

// AliasBreed is any breed name the registry links to a transboundary breed,
// usually a national breed population. Several aliases may share a name and
// species yet point at different transboundary ids.
type AliasBreed struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	TransboundaryID string `json:"transboundary_id" yaml:"transboundary_id"`
	SpeciesID       string `json:"species_id" yaml:"species_id"`
	ISO3            string `json:"iso3,omitempty" yaml:"iso3,omitempty"`
}
