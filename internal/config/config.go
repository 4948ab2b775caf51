package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each sheet request. The gviz endpoint normally
	// answers within a few seconds.
	DefaultTimeout = gsheet.DefaultTimeout

	// DefaultConcurrency is the number of sources loaded at once.
	DefaultConcurrency = 4

	// DefaultLocale orders party names. The petition sheet is Brazilian.
	DefaultLocale = "pt-BR"

	// AppName is the application name used for XDG directory paths.
	AppName = "signboard"

	// DefaultUserAgent identifies signboard in HTTP requests.
	DefaultUserAgent = gsheet.DefaultUserAgent

	// DefaultMaxBodySize limits the response body size to read.
	DefaultMaxBodySize = gsheet.DefaultMaxBodySize
)

// Config holds all configuration options for signboard.
// It is populated from defaults, the config file and CLI flags, in that
// order, and passed through the application explicitly.
type Config struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Concurrency is the number of sources loaded at once.
	Concurrency int

	// Verbose enables debug logging. When false only warnings and errors
	// are logged.
	Verbose bool

	// LogJSON switches log output to JSON.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// File is the loaded configuration file, or nil.
	File *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string

	// XLSXFile selects spreadsheet output written to this path.
	XLSXFile string

	// Sources are the resolved sheet sources to load.
	Sources []gsheet.Source

	// Locale is the BCP 47 tag used to order party names.
	Locale string

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize is the maximum response size in bytes. 0 uses the default.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Locale:      DefaultLocale,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for signboard.
// On Linux: ~/.config/signboard
// On macOS: ~/Library/Application Support/signboard
// On Windows: %APPDATA%\signboard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the config file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// ApplyFile copies the settings of a config file over the current values.
// Zero values in the file are ignored.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f
	if f.Locale != "" {
		c.Locale = f.Locale
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if f.Proxy != "" {
		c.Proxy = f.Proxy
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
}

// SourceOverride holds sheet coordinates given on the command line.
// Non-empty fields replace the configured ones on every resolved source.
type SourceOverride struct {
	SheetID string
	GID     string
	Range   string
}

// ResolveSources turns source names into Sources using the config file.
//
// With no names the "default" source is used. A name missing from the
// config file returns ErrUnknownSource, except "default", which always
// resolves to the built-in petition sheet.
func (c *Config) ResolveSources(names []string, override SourceOverride) error {
	if len(names) == 0 {
		names = []string{model.DefaultSourceName}
	}

	file := c.File
	if file == nil {
		file = &File{}
	}

	sources := make([]gsheet.Source, 0, len(names))
	for _, name := range names {
		sc, ok := file.GetSource(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
		if override.SheetID != "" {
			sc.SheetID = override.SheetID
		}
		if override.GID != "" {
			sc.GID = override.GID
		}
		if override.Range != "" {
			sc.Range = override.Range
		}
		sources = append(sources, sc.Source(name))
	}

	c.Sources = sources
	return nil
}

// LocaleTag returns the parsed Locale, or the default locale when it does
// not parse.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.MustParse(DefaultLocale)
	}
	return tag
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSource
	}

	for _, src := range c.Sources {
		if err := gsheet.ValidateSheetID(src.SheetID); err != nil {
			return fmt.Errorf("%w: source %q", ErrInvalidSheetID, src.Name)
		}
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.XLSXFile != ""} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}

	if c.Proxy != "" && !gsheet.IsValidProxyAddress(c.Proxy) {
		return fmt.Errorf("%w: %q", ErrInvalidProxyAddress, c.Proxy)
	}

	return nil
}

// ClientOptions returns the gsheet client options for this configuration.
func (c *Config) ClientOptions() []gsheet.Option {
	return []gsheet.Option{
		gsheet.WithTimeout(c.Timeout),
		gsheet.WithUserAgent(c.UserAgent),
		gsheet.WithMaxBodySize(c.MaxBodySize),
		gsheet.WithProxy(c.Proxy),
	}
}
