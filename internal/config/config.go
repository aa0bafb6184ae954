// Package config loads dadismatch settings from flags' defaults, the
// environment, .env files and an optional YAML config file, and validates
// them before any work starts.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Config holds the application configuration.
type Config struct {
	// Global flags
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=table json yaml wide"`

	// Config file
	ConfigFile string `mapstructure:"-"`

	// Registry access
	APIKey    string        `mapstructure:"dadis_api_key"`
	BaseURL   string        `mapstructure:"dadis_base_url" validate:"required,url"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`

	// Matching
	Workers      int             `mapstructure:"workers" validate:"gte=1,lte=64"`
	Columns      records.Columns `mapstructure:"columns"`
	OutputColumn string          `mapstructure:"output_column" validate:"required"`

	// Logging configuration. LogLevel comes from LOG_LEVEL or the config
	// file, LogLevelFlag from --log-level.
	LogLevel     string `mapstructure:"log_level"`
	LogLevelFlag string `mapstructure:"-"`
	LogFormat    string `mapstructure:"log_format" validate:"omitempty,oneof=auto json console pretty"`
	LogOutput    string `mapstructure:"log_output"`
}

// envFiles are loaded in order; earlier files win, and real environment
// variables win over both.
var envFiles = []string{".env.local", ".env"}

// Load reads configuration in order of precedence:
//  1. Command-line flags (applied later by the caller)
//  2. Environment variables (DADIS_API_KEY, DADIS_BASE_URL, LOG_*, DADISMATCH_*)
//  3. .env.local, then .env
//  4. Config file (configFile, or ~/.dadismatch.yaml, or ./.dadismatch.yaml)
//  5. Defaults
func Load(configFile string) (*Config, error) {
	loadEnvFiles(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := bindEnv(v); err != nil {
		return nil, errors.NewConfigError("environment", err.Error(), err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("config", "decoding configuration", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := records.DefaultColumns()

	v.SetDefault("dadis_api_key", "")
	v.SetDefault("dadis_base_url", constants.DefaultRegistryURL)
	v.SetDefault("rate_limit", constants.DefaultRateLimit)
	v.SetDefault("burst", constants.BurstSize)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("columns.record_id", def.RecordID)
	v.SetDefault("columns.term_label", def.TermLabel)
	v.SetDefault("columns.reference_name", def.ReferenceName)
	v.SetDefault("columns.reference_species_name", def.ReferenceSpeciesName)
	v.SetDefault("columns.ignore_flag", def.IgnoreFlag)
	v.SetDefault("output_column", constants.ColumnTransboundaryID)
	v.SetDefault("format", "")
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// envPrefix namespaces every setting without a well-known variable, e.g.
// DADISMATCH_WORKERS or DADISMATCH_COLUMNS_RECORD_ID.
const envPrefix = "DADISMATCH"

// bindEnv maps settings to their conventional unprefixed variables.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"dadis_api_key":  constants.APIKeyEnv,
		"dadis_base_url": constants.BaseURLEnv,
		"log_level":      "LOG_LEVEL",
		"log_format":     "LOG_FORMAT",
		"log_output":     "LOG_OUTPUT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. Missing files
// are ignored.
func loadEnvFiles(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// UpdateFromFlags applies parsed global flags, which take precedence over
// every other source. Empty strings leave the loaded value in place.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevelFlag = logLevel
	}
}

// Validate checks every field constraint. Failures come back as a single
// *errors.ConfigError naming each offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewConfigError("config", err.Error(), err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.NewConfigError("config", strings.Join(msgs, "; "), err)
}

// RequireAPIKey fails when no registry key was supplied by any source.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.NewConfigError(constants.RegistryName, constants.ErrMsgMissingAPIKey, errors.ErrAPIKeyRequired)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", field, map[string]string{"gte": ">=", "lte": "<="}[fe.Tag()], fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
