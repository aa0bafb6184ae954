// Package constants provides shared constants used throughout the dadismatch codebase.
// This includes timeouts, rate limits, file permissions, and the default column
// names of the breed tables the tool reads and writes.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single registry HTTP request
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for a whole CLI command
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per second sent to the registry API
	DefaultRateLimit = 5

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 3
)

// Limit constants
const (
	// DefaultWorkers is the default number of goroutines used by the matcher
	DefaultWorkers = 1

	// MaxWorkers caps the matcher parallelism
	MaxWorkers = 64

	// MaxResponseBytes caps the size of a single registry response body (64 MB)
	MaxResponseBytes = 64 << 20
)

// Registry constants
const (
	// DefaultRegistryURL is the base URL of the DAD-IS API
	DefaultRegistryURL = "https://us-central1-fao-dadis-dev.cloudfunctions.net/api/v1"

	// RegistryName identifies the reference registry in errors and logs
	RegistryName = "dadis"

	// APIKeyEnv is the environment variable holding the registry API key
	APIKeyEnv = "DADIS_API_KEY"

	// BaseURLEnv overrides the registry base URL
	BaseURLEnv = "DADIS_BASE_URL"

	// SpeciesLanguage is the language of species display names
	SpeciesLanguage = "en"
)

// Default column names of the source table
const (
	ColumnRecordID             = "record_id"
	ColumnTermLabel            = "term_label"
	ColumnReferenceName        = "reference_name"
	ColumnReferenceSpeciesName = "reference_species_name"
	ColumnIgnoreFlag           = "ignore_flag"

	// ColumnTransboundaryID is the column appended to the output table
	ColumnTransboundaryID = "transboundary_id"
)

// Path constants
const (
	// ConfigFileName is the config file searched for in $HOME and the working directory
	ConfigFileName = ".dadismatch"

	// TempFilePattern is the pattern of the temporary file used for atomic writes
	TempFilePattern = ".dadismatch-*.tsv"
)

// Error messages
const (
	// ErrMsgMissingAPIKey explains how to supply the registry credential
	ErrMsgMissingAPIKey = "DAD-IS API key not set: set the DADIS_API_KEY environment variable or use the --api-key flag"
)
