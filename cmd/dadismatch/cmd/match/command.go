// Package match provides the match command.
package match

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vbo-tools/dadismatch"
	"github.com/vbo-tools/dadismatch/internal/appcontext"
	"github.com/vbo-tools/dadismatch/internal/cmd/output"
	"github.com/vbo-tools/dadismatch/internal/config"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Flags holds the match command flags.
type Flags struct {
	Input        string
	Output       string
	APIKey       string
	BaseURL      string
	Report       string
	Workers      int
	OutputColumn string

	ColumnRecordID             string
	ColumnTermLabel            string
	ColumnReferenceName        string
	ColumnReferenceSpeciesName string
	ColumnIgnoreFlag           string
}

// NewCommand creates the match command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "match",
		GroupID: "core",
		Short:   "Add DAD-IS transboundary ids to a breed table",
		Long: `Match reads a tab-separated breed table, looks up every record's
reference breed and species names in DAD-IS and writes the table back with
a transboundary id column.

The first row holds column names and the second row metadata; both are
copied through. Records whose ignore flag is "duplicate" are copied with an
empty id. Names that match several transboundary breeds are left empty and
listed in the log (use -v to see the record ids) and in --report.

The output is written atomically, so --output may name the input file.`,
		Example: `  dadismatch match -i breeds.tsv --output breeds.tsv
  dadismatch match -i breeds.tsv --output out.tsv --report report.yaml
  DADIS_API_KEY=... dadismatch match -i in.tsv --output out.tsv -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			applyFlags(cmd, cfg, flags)
			return Execute(cmd, app, flags, enricherOptions(cmd, cfg, flags)...)
		},
	}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "breed table to read (TSV)")
	cmd.Flags().StringVar(&flags.Output, "output", "", "file to write the enriched table to")
	cmd.Flags().StringVar(&flags.APIKey, "api-key", "", "DAD-IS API key (default $DADIS_API_KEY)")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "DAD-IS API base URL")
	cmd.Flags().StringVar(&flags.Report, "report", "", "write a run report to this file (.yaml or .json)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "records matched in parallel (default 1)")
	cmd.Flags().StringVar(&flags.OutputColumn, "output-column", "", "name of the appended id column (default transboundary_id)")
	cmd.Flags().StringVar(&flags.ColumnRecordID, "column-record-id", "", "record id column")
	cmd.Flags().StringVar(&flags.ColumnTermLabel, "column-term-label", "", "term label column")
	cmd.Flags().StringVar(&flags.ColumnReferenceName, "column-reference-name", "", "reference breed name column")
	cmd.Flags().StringVar(&flags.ColumnReferenceSpeciesName, "column-reference-species", "", "reference species name column")
	cmd.Flags().StringVar(&flags.ColumnIgnoreFlag, "column-ignore-flag", "", "ignore flag column")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// applyFlags copies explicitly set registry flags over the loaded
// configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *Flags) {
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = f.APIKey
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = f.BaseURL
	}
}

// enricherOptions turns explicitly set table and matcher flags into
// options applied over the configured ones.
func enricherOptions(cmd *cobra.Command, cfg *config.Config, f *Flags) []dadismatch.Option {
	var opts []dadismatch.Option

	columns := cfg.Columns
	if columns == (records.Columns{}) {
		columns = records.DefaultColumns()
	}
	changed := false
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
			changed = true
		}
	}
	set("column-record-id", &columns.RecordID, f.ColumnRecordID)
	set("column-term-label", &columns.TermLabel, f.ColumnTermLabel)
	set("column-reference-name", &columns.ReferenceName, f.ColumnReferenceName)
	set("column-reference-species", &columns.ReferenceSpeciesName, f.ColumnReferenceSpeciesName)
	set("column-ignore-flag", &columns.IgnoreFlag, f.ColumnIgnoreFlag)
	if changed {
		opts = append(opts, dadismatch.WithColumns(columns))
	}

	if cmd.Flags().Changed("output-column") {
		opts = append(opts, dadismatch.WithOutputColumn(f.OutputColumn))
	}
	if cmd.Flags().Changed("workers") {
		opts = append(opts, dadismatch.WithWorkers(f.Workers))
	}
	return opts
}

// Execute runs a match with the given flags and enricher options.
func Execute(cmd *cobra.Command, app appcontext.Interface, flags *Flags, opts ...dadismatch.Option) error {
	ctx := cmd.Context()
	logger := app.Logger()

	enricher, err := app.Enricher(opts...)
	if err != nil {
		return err
	}

	report, err := enricher.Run(ctx, flags.Input, flags.Output)
	if err != nil {
		return err
	}

	if flags.Report != "" {
		if err := dadismatch.WriteReport(flags.Report, report); err != nil {
			return err
		}
		logger.Info().Str("report", flags.Report).Msg("Wrote run report")
	}

	return printReport(cmd.OutOrStdout(), app.OutputFormat(), report)
}

func printReport(w io.Writer, format string, report *dadismatch.Report) error {
	f := output.DetectFormat(format)
	formatter := output.NewFormatter(f)

	switch f {
	case output.FormatTable, output.FormatWide:
		return formatter.Format(w, output.StatsToTableData(report.Stats))
	default:
		return formatter.Format(w, report)
	}
}
