// Package fetch provides commands that list DAD-IS reference data.
package fetch

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/vbo-tools/dadismatch/internal/appcontext"
	"github.com/vbo-tools/dadismatch/internal/cmd/output"
	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// NewCommand creates the fetch command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:     "fetch",
		GroupID: "core",
		Short:   "List DAD-IS reference data",
		Long: `Fetch lists the reference data dadismatch matches against: species,
canonical transboundary breed names, and every breed name linked to a
transboundary breed.`,
		Example: `  dadismatch fetch species
  dadismatch fetch names -o json
  dadismatch fetch breeds -o wide`,
	}

	cmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "DAD-IS API key (default $DADIS_API_KEY)")

	cmd.AddCommand(
		newSpeciesCommand(app, &apiKey),
		newNamesCommand(app, &apiKey),
		newBreedsCommand(app, &apiKey),
	)
	return cmd
}

func newSpeciesCommand(app appcontext.Interface, apiKey *string) *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := registryFor(cmd, app, *apiKey)
			if err != nil {
				return err
			}
			species, err := provider.FetchSpecies(cmd.Context())
			if err != nil {
				return errors.WrapRegistry(constants.RegistryName, registry.OpSpecies, err)
			}
			app.Logger().Debug().Int("count", len(species)).Msg("Fetched species")
			return render(cmd.OutOrStdout(), app.OutputFormat(), species, func(bool) output.Data {
				return output.SpeciesToTableData(species)
			})
		},
	}
}

func newNamesCommand(app appcontext.Interface, apiKey *string) *cobra.Command {
	return &cobra.Command{
		Use:     "names",
		Aliases: []string{"canonical"},
		Short:   "List canonical transboundary breed names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			provider, err := registryFor(cmd, app, *apiKey)
			if err != nil {
				return err
			}
			names, err := provider.FetchCanonicalBreedNames(ctx)
			if err != nil {
				return errors.WrapRegistry(constants.RegistryName, registry.OpCanonical, err)
			}
			app.Logger().Debug().Int("count", len(names)).Msg("Fetched canonical names")
			return render(cmd.OutOrStdout(), app.OutputFormat(), names, func(bool) output.Data {
				return output.CanonicalToTableData(names, speciesNames(ctx, provider))
			})
		},
	}
}

func newBreedsCommand(app appcontext.Interface, apiKey *string) *cobra.Command {
	return &cobra.Command{
		Use:     "breeds",
		Aliases: []string{"aliases"},
		Short:   "List every breed name linked to a transboundary breed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			provider, err := registryFor(cmd, app, *apiKey)
			if err != nil {
				return err
			}
			breeds, err := provider.FetchAllAliasBreeds(ctx)
			if err != nil {
				return errors.WrapRegistry(constants.RegistryName, registry.OpAliases, err)
			}
			app.Logger().Debug().Int("count", len(breeds)).Msg("Fetched alias breeds")
			return render(cmd.OutOrStdout(), app.OutputFormat(), breeds, func(wide bool) output.Data {
				return output.AliasToTableData(breeds, speciesNames(ctx, provider), wide)
			})
		},
	}
}

// registryFor applies an explicit --api-key before creating the client.
func registryFor(cmd *cobra.Command, app appcontext.Interface, apiKey string) (registry.Provider, error) {
	if cmd.Flags().Changed("api-key") {
		app.Config().APIKey = apiKey
	}
	return app.Registry()
}

// render writes data as JSON or YAML, or as the table built by table.
func render(w io.Writer, format string, data any, table func(wide bool) output.Data) error {
	f := output.DetectFormat(format)
	formatter := output.NewFormatter(f)
	switch f {
	case output.FormatTable:
		return formatter.Format(w, table(false))
	case output.FormatWide:
		return formatter.Format(w, table(true))
	default:
		return formatter.Format(w, data)
	}
}

// speciesNames returns a species id resolver, or nil when the species list
// cannot be fetched. Raw ids are shown in that case.
func speciesNames(ctx context.Context, provider registry.SpeciesFetcher) func(string) string {
	species, err := provider.FetchSpecies(ctx)
	if err != nil {
		return nil
	}
	names := make(map[string]string, len(species))
	for _, s := range species {
		names[s.ID] = s.Name
	}
	return func(id string) string { return names[id] }
}
