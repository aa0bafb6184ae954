package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbo-tools/dadismatch/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "default", cfg: config.Config{}, want: "info"},
		{name: "env level", cfg: config.Config{LogLevel: "error"}, want: "error"},
		{name: "invalid env level", cfg: config.Config{LogLevel: "loud"}, want: "info"},
		{name: "verbose", cfg: config.Config{Verbose: true, LogLevel: "error"}, want: "debug"},
		{name: "quiet", cfg: config.Config{Quiet: true}, want: "warn"},
		{name: "verbose and quiet", cfg: config.Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "flag wins", cfg: config.Config{LogLevelFlag: "trace", Verbose: true, LogLevel: "error"}, want: "trace"},
		{name: "invalid flag", cfg: config.Config{LogLevelFlag: "chatty"}, want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.cfg))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&config.Config{LogOutput: "discard", LogFormat: "json", LogLevel: "warn"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
