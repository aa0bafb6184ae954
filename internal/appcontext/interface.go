// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/vbo-tools/dadismatch"
	"github.com/vbo-tools/dadismatch/internal/config"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Config returns the loaded and flag-updated configuration.
	Config() *config.Config

	// Registry returns the reference registry client, creating it lazily.
	// It fails with a configuration error when no API key is set.
	Registry() (registry.Provider, error)

	// Enricher returns an Enricher configured from Config, with opts
	// applied last.
	Enricher(opts ...dadismatch.Option) (*dadismatch.Enricher, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
