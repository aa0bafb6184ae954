package matcher

import (
	"sync"

	"github.com/rs/zerolog"
)

// Reporter receives matcher telemetry. It is a side channel: nothing it
// does affects the match result.
type Reporter interface {
	Ambiguous(recordIDs []string)
	Conflicts(conflicts []Conflict)
	Summary(stats Stats)
}

// NopReporter discards all telemetry.
type NopReporter struct{}

// Ambiguous implements Reporter.
func (NopReporter) Ambiguous([]string) {}

// Conflicts implements Reporter.
func (NopReporter) Conflicts([]Conflict) {}

// Summary implements Reporter.
func (NopReporter) Summary(Stats) {}

// LogReporter writes counts at info level and record lists at debug level.
type LogReporter struct {
	Logger *zerolog.Logger
}

// NewLogReporter creates a LogReporter. A nil logger discards output.
func NewLogReporter(logger *zerolog.Logger) *LogReporter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &LogReporter{Logger: logger}
}

// Ambiguous implements Reporter.
func (r *LogReporter) Ambiguous(recordIDs []string) {
	r.Logger.Info().
		Int("ambiguous", len(recordIDs)).
		Msg("Records matched against multiple transboundary breeds will not be updated; use --log-level=debug to list them")
	if len(recordIDs) > 0 {
		r.Logger.Debug().Strs("record_ids", recordIDs).Msg("Ambiguous records")
	}
}

// Conflicts implements Reporter.
func (r *LogReporter) Conflicts(conflicts []Conflict) {
	if len(conflicts) == 0 {
		return
	}
	r.Logger.Info().
		Int("conflicts", len(conflicts)).
		Msg("Canonical matches disagree with alias matches; canonical ids kept")
	for _, c := range conflicts {
		r.Logger.Debug().
			Str("record_id", c.RecordID).
			Str("canonical", c.Canonical).
			Str("alias", c.Alias).
			Msg("Match conflict")
	}
}

// Summary implements Reporter.
func (r *LogReporter) Summary(stats Stats) {
	r.Logger.Info().
		Int("matched", stats.Matched).
		Int("eligible", stats.Eligible).
		Int("canonical", stats.CanonicalMatches).
		Int("alias", stats.AliasMatches).
		Int("ignored", stats.Ignored).
		Float64("match_rate", stats.MatchRate()).
		Msgf("%d / %d records matched", stats.Matched, stats.Eligible)
}

// RecordingReporter keeps every report it receives. Useful in tests.
type RecordingReporter struct {
	mu        sync.Mutex
	ambiguous [][]string
	conflicts [][]Conflict
	summaries []Stats
}

// Ambiguous implements Reporter.
func (r *RecordingReporter) Ambiguous(recordIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ambiguous = append(r.ambiguous, append([]string(nil), recordIDs...))
}

// Conflicts implements Reporter.
func (r *RecordingReporter) Conflicts(conflicts []Conflict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, append([]Conflict(nil), conflicts...))
}

// Summary implements Reporter.
func (r *RecordingReporter) Summary(stats Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, stats)
}

// AmbiguousReports returns every ambiguity report received.
func (r *RecordingReporter) AmbiguousReports() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ambiguous
}

// ConflictReports returns every conflict report received.
func (r *RecordingReporter) ConflictReports() [][]Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conflicts
}

// Summaries returns every summary received.
func (r *RecordingReporter) Summaries() []Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries
}
