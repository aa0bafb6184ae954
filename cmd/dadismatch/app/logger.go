package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/vbo-tools/dadismatch/internal/config"
	"github.com/vbo-tools/dadismatch/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. LOG_LEVEL environment variable
//  5. Default (info)
func NewLogger(cfg *config.Config) zerolog.Logger {
	level := determineLogLevel(cfg)

	logConfig := &logging.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    cfg.LogOutput,
		NoColor:   cfg.NoColor || os.Getenv("NO_COLOR") != "",
		AddCaller: level == "debug" || level == "trace",
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// determineLogLevel applies the precedence rules of NewLogger.
func determineLogLevel(cfg *config.Config) string {
	if cfg.LogLevelFlag != "" {
		return validateLogLevel(cfg.LogLevelFlag)
	}

	if cfg.Verbose && cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if cfg.Verbose {
		return "debug"
	}
	if cfg.Quiet {
		return "warn"
	}
	if cfg.LogLevel != "" {
		return validateLogLevel(cfg.LogLevel)
	}

	return "info"
}

// validateLogLevel returns level, or "info" with a warning when level is
// not a known log level.
func validateLogLevel(level string) string {
	if logging.ValidLevel(level) {
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", level, "info")
	return "info"
}
