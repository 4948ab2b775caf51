package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and ResolveSources() so
// callers can use errors.Is() for programmatic handling.
var (
	// ErrNoSource is returned when no sheet source is selected.
	ErrNoSource = errors.New("no source specified: name a configured source or use --sheet-id")

	// ErrUnknownSource is returned when a source name is not in the config file.
	ErrUnknownSource = errors.New("unknown source")

	// ErrInvalidSheetID is returned when a sheet id is empty or malformed.
	ErrInvalidSheetID = errors.New("invalid sheet id: expected letters, digits, '-' or '_'")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --xlsx is specified. Only one output format can be used
	// at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --xlsx")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidLocale is returned when the locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale: expected a BCP 47 tag such as pt-BR")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)
