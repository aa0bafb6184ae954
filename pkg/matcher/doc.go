// Package matcher resolves source breed records to reference transboundary
// ids and merges the result back onto the original record set.
//
// Matching is two-tiered. A record's (reference name, reference species
// name) pair is first looked up among canonical names; if that misses, among
// alias names. An alias lookup yielding more than one distinct transboundary
// id is ambiguous and never resolves. A canonical match always takes
// precedence, even when an alias match disagrees with it. Records flagged
// "duplicate" are skipped by matching and come back null from Merge.
//
// Operator telemetry (ambiguity lists, conflicts, match rate) goes to an
// injected Reporter so that Run stays a pure function of its inputs.
package matcher
