package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/vbo-tools/dadismatch"
	"github.com/vbo-tools/dadismatch/internal/config"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ConfigFunc       func() *config.Config
	RegistryFunc     func() (registry.Provider, error)
	EnricherFunc     func(...dadismatch.Option) (*dadismatch.Enricher, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Config returns a config using the mock function or an empty config.
func (m *Mock) Config() *config.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	return &config.Config{}
}

// Registry returns a provider using the mock function or an empty
// in-memory registry.
func (m *Mock) Registry() (registry.Provider, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return registry.NewMemory(), nil
}

// Enricher returns an enricher using the mock function, or one over
// Registry with opts applied.
func (m *Mock) Enricher(opts ...dadismatch.Option) (*dadismatch.Enricher, error) {
	if m.EnricherFunc != nil {
		return m.EnricherFunc(opts...)
	}
	provider, err := m.Registry()
	if err != nil {
		return nil, err
	}
	return dadismatch.New(provider, opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
