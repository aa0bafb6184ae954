package index

import "fmt"

// SpeciesName is a species display name that may be null, which happens
// when a registry entry references a species id the species list lacks.
type SpeciesName struct {
	Name  string
	Valid bool
}

// String implements fmt.Stringer.
func (s SpeciesName) String() string {
	if !s.Valid {
		return "<null>"
	}
	return s.Name
}

// Key is the composite join key shared by both name indexes.
type Key struct {
	Breed   string
	Species SpeciesName
}

// NewKey builds a key with a non-null species name, as used for source
// record lookups.
func NewKey(breed, species string) Key {
	return Key{Breed: breed, Species: SpeciesName{Name: species, Valid: true}}
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("(%q, %s)", k.Breed, k.Species)
}

// compareKeys orders keys by breed, then species, null species first.
func compareKeys(a, b Key) int {
	switch {
	case a.Breed < b.Breed:
		return -1
	case a.Breed > b.Breed:
		return 1
	case a.Species.Valid != b.Species.Valid:
		if !a.Species.Valid {
			return -1
		}
		return 1
	case a.Species.Name < b.Species.Name:
		return -1
	case a.Species.Name > b.Species.Name:
		return 1
	}
	return 0
}
