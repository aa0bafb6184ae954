package dadis

import (
	"bytes"
	"encoding/json"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// envelope is the {"response": [...]} wrapper around every list payload.
type envelope struct {
	Response any
	present  bool
}

// UnmarshalJSON decodes the response field into the caller's target.
func (e *envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	body, ok := raw["response"]
	if !ok {
		return nil
	}
	e.present = true
	return json.Unmarshal(body, e.Response)
}

// flexID accepts an id encoded either as a JSON string or a number.
type flexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = flexID(n.String())
	}
	return nil
}

// localizedName is a {"en": "...", "fr": ...} map. A bare string is
// accepted as the English name.
type localizedName map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (l *localizedName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = localizedName{constants.SpeciesLanguage: s}
		return nil
	}
	m := map[string]string{}
	if !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
	}
	*l = m
	return nil
}

type speciesResponse struct {
	ID   flexID        `json:"id"`
	Name localizedName `json:"name"`
}

func (s speciesResponse) toSpecies() registry.Species {
	return registry.Species{
		ID:   string(s.ID),
		Name: s.Name[constants.SpeciesLanguage],
	}
}

type transboundaryNameResponse struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	SpeciesID flexID `json:"speciesId"`
}

func (n transboundaryNameResponse) toCanonical() registry.CanonicalBreed {
	return registry.CanonicalBreed{
		TransboundaryID: string(n.ID),
		Name:            n.Name,
		SpeciesID:       string(n.SpeciesID),
	}
}

type transboundaryBreedResponse struct {
	ID              flexID `json:"id"`
	Name            string `json:"name"`
	TransboundaryID flexID `json:"transboundaryId"`
	SpeciesID       flexID `json:"speciesId"`
	ISO3            string `json:"iso3"`
}

func (b transboundaryBreedResponse) toAlias() registry.AliasBreed {
	return registry.AliasBreed{
		ID:              string(b.ID),
		Name:            b.Name,
		TransboundaryID: string(b.TransboundaryID),
		SpeciesID:       string(b.SpeciesID),
		ISO3:            b.ISO3,
	}
}
