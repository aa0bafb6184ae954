package matcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/index"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Matcher joins source records against canonical and alias indexes.
type Matcher struct {
	canonical *index.Canonical
	alias     *index.Alias
	reporter  Reporter
	workers   int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithReporter sets the telemetry reporter. Defaults to NopReporter.
func WithReporter(r Reporter) Option {
	return func(m *Matcher) {
		if r != nil {
			m.reporter = r
		}
	}
}

// WithWorkers evaluates records on up to n goroutines. Results do not
// depend on n.
func WithWorkers(n int) Option {
	return func(m *Matcher) {
		m.workers = min(max(n, 1), constants.MaxWorkers)
	}
}

// New creates a Matcher over the given indexes. Nil indexes match nothing.
func New(canonical *index.Canonical, alias *index.Alias, opts ...Option) *Matcher {
	m := &Matcher{
		canonical: canonical,
		alias:     alias,
		reporter:  NopReporter{},
		workers:   constants.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// outcome is the per-record lookup result, before precedence is applied.
type outcome struct {
	canonical    string
	hasCanonical bool
	alias        []string // distinct alias candidates
}

// Run resolves every non-ignored record to zero or one transboundary id.
// It only fails if ctx is canceled.
func (m *Matcher) Run(ctx context.Context, recs []records.SourceRecord) (*Result, error) {
	eligible := make([]records.SourceRecord, 0, len(recs))
	for _, r := range recs {
		if !r.Ignored() {
			eligible = append(eligible, r)
		}
	}

	outcomes, err := m.evaluate(ctx, eligible)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Matches: make(map[string]*string, len(eligible)),
		Stats: Stats{
			Total:    len(recs),
			Ignored:  len(recs) - len(eligible),
			Eligible: len(eligible),
		},
	}

	for i, rec := range eligible {
		o := outcomes[i]

		var alias string
		switch len(o.alias) {
		case 0:
		case 1:
			alias = o.alias[0]
		default:
			result.Ambiguous = append(result.Ambiguous, rec.RecordID)
		}

		switch {
		case o.hasCanonical:
			result.Matches[rec.RecordID] = ptr(o.canonical)
			result.Stats.CanonicalMatches++
			if alias != "" && alias != o.canonical {
				result.Conflicts = append(result.Conflicts, Conflict{
					RecordID:  rec.RecordID,
					Canonical: o.canonical,
					Alias:     alias,
				})
			}
		case alias != "":
			result.Matches[rec.RecordID] = ptr(alias)
			result.Stats.AliasMatches++
		default:
			result.Matches[rec.RecordID] = nil
		}
	}

	result.Stats.Matched = result.Stats.CanonicalMatches + result.Stats.AliasMatches
	result.Stats.Unmatched = result.Stats.Eligible - result.Stats.Matched
	result.Stats.Ambiguous = len(result.Ambiguous)
	result.Stats.Conflicts = len(result.Conflicts)

	m.reporter.Ambiguous(result.Ambiguous)
	m.reporter.Conflicts(result.Conflicts)
	m.reporter.Summary(result.Stats)

	return result, nil
}

// evaluate looks every record up in both indexes. Outcomes are written by
// position, so their order never depends on scheduling.
func (m *Matcher) evaluate(ctx context.Context, recs []records.SourceRecord) ([]outcome, error) {
	outcomes := make([]outcome, len(recs))

	if m.workers <= 1 {
		for i, r := range recs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = m.lookup(r)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, r := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = m.lookup(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (m *Matcher) lookup(r records.SourceRecord) outcome {
	key := index.NewKey(r.ReferenceName, r.ReferenceSpeciesName)
	id, ok := m.canonical.Lookup(key)
	return outcome{
		canonical:    id,
		hasCanonical: ok,
		alias:        m.alias.Distinct(key),
	}
}

func ptr(s string) *string {
	return &s
}
