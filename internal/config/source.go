package config

import (
	"time"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
)

// SourceConfig holds the coordinates of one sheet source.
type SourceConfig struct {
	// SheetID is the spreadsheet identifier from the document URL.
	SheetID string `yaml:"sheetId,omitempty"`

	// GID is the worksheet identifier.
	GID string `yaml:"gid,omitempty"`

	// Range limits the query to a cell range, e.g. "A:I".
	Range string `yaml:"range,omitempty"`
}

// File represents the structure of the .signboard configuration file.
type File struct {
	// Defaults is applied to every source unless the source overrides it.
	Defaults SourceConfig `yaml:"defaults,omitempty"`

	// Sources maps source names to their coordinates.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Locale is the BCP 47 tag used to order party names.
	Locale string `yaml:"locale,omitempty"`

	// Timeout is the HTTP request timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Concurrency is the number of sources loaded at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize overrides the response size limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`
}

// GetSource returns the configuration of a named source merged over the
// defaults. The boolean is false when the name is not configured.
//
// The name "default" always resolves. When it is not configured it is the
// built-in petition sheet under the file defaults.
func (cf *File) GetSource(name string) (SourceConfig, bool) {
	result := cf.Defaults

	src, ok := cf.Sources[name]
	if !ok {
		if name != model.DefaultSourceName {
			return SourceConfig{}, false
		}
		if result.SheetID == "" {
			result.SheetID = gsheet.DefaultSheetID
		}
		return result, true
	}

	if src.SheetID != "" {
		result.SheetID = src.SheetID
	}
	if src.GID != "" {
		result.GID = src.GID
	}
	if src.Range != "" {
		result.Range = src.Range
	}
	return result, true
}

// SourceNames returns the configured source names.
func (cf *File) SourceNames() []string {
	names := make([]string, 0, len(cf.Sources))
	for name := range cf.Sources {
		names = append(names, name)
	}
	return names
}

// Source converts the configuration to a fetchable source.
func (sc SourceConfig) Source(name string) gsheet.Source {
	return gsheet.Source{
		Name:    name,
		SheetID: sc.SheetID,
		GID:     sc.GID,
		Range:   sc.Range,
	}
}
