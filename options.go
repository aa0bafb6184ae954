package dadismatch

import (
	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/matcher"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Option is a function that configures an Enricher
type Option func(*config) error

// config holds the Enricher settings
type config struct {
	columns      records.Columns
	outputColumn string
	workers      int
	reporter     matcher.Reporter
	runID        string
}

func defaultConfig() *config {
	return &config{
		columns:      records.DefaultColumns(),
		outputColumn: constants.ColumnTransboundaryID,
		workers:      constants.DefaultWorkers,
	}
}

// WithColumns configures the source table column names
func WithColumns(columns records.Columns) Option {
	return func(c *config) error {
		for _, name := range columns.Required() {
			if name == "" {
				return errors.NewValidationError("columns", columns, "column names must not be empty")
			}
		}
		c.columns = columns
		return nil
	}
}

// WithOutputColumn configures the name of the appended id column
func WithOutputColumn(name string) Option {
	return func(c *config) error {
		if name == "" {
			return errors.NewValidationError("output_column", name, "output column name must not be empty")
		}
		c.outputColumn = name
		return nil
	}
}

// WithWorkers configures matcher parallelism
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 || n > constants.MaxWorkers {
			return errors.NewValidationError("workers", n, "workers must be between 1 and 64")
		}
		c.workers = n
		return nil
	}
}

// WithReporter configures where match telemetry goes. The default logs it.
func WithReporter(r matcher.Reporter) Option {
	return func(c *config) error {
		c.reporter = r
		return nil
	}
}

// WithRunID fixes the run identifier attached to logs and the report.
func WithRunID(id string) Option {
	return func(c *config) error {
		c.runID = id
		return nil
	}
}
