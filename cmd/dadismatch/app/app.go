// Package app provides the application context and dependency management
// for the dadismatch CLI: configuration, logging and the lazily created
// registry client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vbo-tools/dadismatch"
	"github.com/vbo-tools/dadismatch/internal/appcontext"
	"github.com/vbo-tools/dadismatch/internal/config"
	"github.com/vbo-tools/dadismatch/internal/sources/dadis"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// App represents the dadismatch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *config.Config
	logger *zerolog.Logger

	// Registry client (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry registry.Provider
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Registry returns the DAD-IS client, creating it on first use.
func (a *App) Registry() (registry.Provider, error) {
	a.mu.RLock()
	if a.registry != nil {
		r := a.registry
		a.mu.RUnlock()
		return r, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}

	if err := a.config.RequireAPIKey(); err != nil {
		return nil, err
	}

	client, err := dadis.New(a.config.APIKey,
		dadis.WithBaseURL(a.config.BaseURL),
		dadis.WithRateLimit(a.config.RateLimit, a.config.Burst),
		dadis.WithTimeout(a.config.Timeout),
		dadis.WithUserAgent("dadismatch/"+a.version),
	)
	if err != nil {
		return nil, err
	}

	a.registry = client
	return client, nil
}

// Enricher returns an Enricher over Registry configured from Config.
func (a *App) Enricher(opts ...dadismatch.Option) (*dadismatch.Enricher, error) {
	provider, err := a.Registry()
	if err != nil {
		return nil, err
	}

	base := []dadismatch.Option{
		dadismatch.WithColumns(a.config.Columns),
		dadismatch.WithOutputColumn(a.config.OutputColumn),
		dadismatch.WithWorkers(a.config.Workers),
	}
	return dadismatch.New(provider, append(base, opts...)...)
}

// Shutdown drops the registry client. It holds no background work.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry = nil
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRegistry sets a custom registry provider (useful for testing).
func WithRegistry(r registry.Provider) Option {
	return func(a *App) error {
		a.registry = r
		return nil
	}
}
