// Package dadismatch links source breed records to transboundary breed ids
// from the FAO DAD-IS registry.
//
// An Enricher fetches the registry's species, canonical names and alias
// breeds, builds lookup indexes, matches every record of a table and writes
// the table back with one extra column. Either the whole run succeeds and
// one output table is written, or nothing is written.
//
//	client, _ := dadis.New(apiKey)
//	e, _ := dadismatch.New(client, dadismatch.WithWorkers(4))
//	report, err := e.Run(ctx, "breeds.tsv", "breeds.tsv")
package dadismatch

import (
	"context"

	"github.com/vbo-tools/dadismatch/internal/tsv"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/logging"
	"github.com/vbo-tools/dadismatch/pkg/matcher"
	"github.com/vbo-tools/dadismatch/pkg/records"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Enricher runs the fetch, index, match, merge and write workflow.
type Enricher struct {
	provider registry.Provider
	config   *config
}

// New creates an Enricher backed by provider.
func New(provider registry.Provider, opts ...Option) (*Enricher, error) {
	if provider == nil {
		return nil, errors.NewConfigError("enricher", "registry provider is required", nil)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &Enricher{provider: provider, config: cfg}, nil
}

// Run reads the table at input, enriches it and writes it to output.
// input and output may name the same file.
func (e *Enricher) Run(ctx context.Context, input, output string) (*Report, error) {
	ctx = logging.WithFields(e.withRunID(ctx), map[string]any{"input": input, "output": output})
	logger := logging.FromContext(ctx)

	logger.Info().Msg("Reading source table")
	table, err := tsv.Read(input, e.config.columns)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("records", table.Len()).Msg("Source table loaded")

	augmented, report, err := e.Enrich(ctx, table)
	if err != nil {
		return nil, err
	}

	if err := tsv.Write(output, table, augmented, e.config.outputColumn); err != nil {
		return nil, err
	}
	logger.Info().Int("records", len(augmented)).Msg("Wrote enriched table")

	report.Input = input
	report.Output = output
	return report, nil
}

// Enrich matches every record of table against freshly fetched registry
// data. The returned records are in table order, one per table row.
func (e *Enricher) Enrich(ctx context.Context, table *records.Table) ([]records.AugmentedRecord, *Report, error) {
	if table == nil {
		return nil, nil, errors.NewValidationError("table", nil, "table is nil")
	}
	ctx = e.withRunID(ctx)

	idx, err := BuildIndexes(ctx, e.provider)
	if err != nil {
		return nil, nil, err
	}

	result, err := e.Match(ctx, idx, table.Records)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		RunID:     logging.RunID(ctx),
		Stats:     result.Stats,
		Indexes:   idx.Stats(),
		Ambiguous: result.Ambiguous,
		Conflicts: result.Conflicts,
	}
	return matcher.Merge(table.Records, result.Matches), report, nil
}

// Match runs the matcher over recs with the configured workers and reporter.
func (e *Enricher) Match(ctx context.Context, idx *Indexes, recs []records.SourceRecord) (*matcher.Result, error) {
	reporter := e.config.reporter
	if reporter == nil {
		reporter = matcher.NewLogReporter(logging.FromContext(ctx))
	}

	m := matcher.New(idx.Canonical, idx.Alias,
		matcher.WithReporter(reporter),
		matcher.WithWorkers(e.config.workers),
	)
	return m.Run(ctx, recs)
}

func (e *Enricher) withRunID(ctx context.Context) context.Context {
	if logging.RunID(ctx) != "" {
		return ctx
	}
	return logging.WithRunID(ctx, e.config.runID)
}
