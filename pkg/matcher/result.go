package matcher

// Conflict records a record whose canonical and alias matches disagree.
// The canonical id wins; the conflict is reported, never raised.
type Conflict struct {
	RecordID  string `json:"record_id" yaml:"record_id"`
	Canonical string `json:"canonical" yaml:"canonical"`
	Alias     string `json:"alias" yaml:"alias"`
}

// Stats summarises one matcher run.
type Stats struct {
	Total            int `json:"total" yaml:"total"`
	Ignored          int `json:"ignored" yaml:"ignored"`
	Eligible         int `json:"eligible" yaml:"eligible"`
	Matched          int `json:"matched" yaml:"matched"`
	CanonicalMatches int `json:"canonical_matches" yaml:"canonical_matches"`
	AliasMatches     int `json:"alias_matches" yaml:"alias_matches"`
	Ambiguous        int `json:"ambiguous" yaml:"ambiguous"`
	Conflicts        int `json:"conflicts" yaml:"conflicts"`
	Unmatched        int `json:"unmatched" yaml:"unmatched"`
}

// MatchRate returns matched / eligible, or 0 when nothing was eligible.
func (s Stats) MatchRate() float64 {
	if s.Eligible == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Eligible)
}

// Result is the outcome of a matcher run.
type Result struct {
	// Matches has exactly one entry per non-ignored record; nil means no match.
	Matches map[string]*string

	// Ambiguous lists, in input order, records whose alias lookup returned
	// several distinct ids.
	Ambiguous []string

	// Conflicts lists, in input order, canonical/alias disagreements.
	Conflicts []Conflict

	Stats Stats
}

// Lookup returns the resolved id for recordID and whether the record took
// part in matching at all.
func (r *Result) Lookup(recordID string) (*string, bool) {
	id, ok := r.Matches[recordID]
	return id, ok
}
