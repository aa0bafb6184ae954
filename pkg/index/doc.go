// Package index builds the read-only lookup structures the matcher joins
// source records against:
//
//   - Species maps a registry species id to its display name.
//   - Canonical maps (breed name, species name) to the single transboundary
//     id whose canonical name it is.
//   - Alias maps (breed name, species name) to every transboundary id that
//     uses the name, which may be more than one.
//
// Species names are resolved with left-join semantics: an entry whose species
// id is unknown is kept with a null species name rather than dropped. Source
// records always carry a non-null species name (an empty cell is the empty
// string), so such entries are indexed but never matched.
//
// Indexes are never mutated after construction and are safe for concurrent
// reads.
package index
