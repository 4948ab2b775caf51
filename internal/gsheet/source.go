package gsheet

import (
	"fmt"
	"net/url"
	"regexp"
)

// Default sheet coordinates of the petition dashboard.
const (
	DefaultSheetID = "1wNNB1XO2W5TxJFw0Ki1XmrwOm6-aH98asge2w16GoaI"
	DefaultGID     = "0"

	// DefaultBaseURL is the Google Docs origin.
	DefaultBaseURL = "https://docs.google.com"
)

var sheetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Source identifies one worksheet and an optional cell range.
type Source struct {
	// Name is the configured source name.
	Name string `json:"name" yaml:"name"`

	// SheetID is the spreadsheet identifier from the document URL.
	SheetID string `json:"sheet_id" yaml:"sheetId"`

	// GID is the worksheet identifier. Empty means "0".
	GID string `json:"gid" yaml:"gid"`

	// Range limits the query to a cell range such as "A:I". Optional.
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
}

// DefaultSource returns the built-in petition sheet.
func DefaultSource() Source {
	return Source{
		Name:    "default",
		SheetID: DefaultSheetID,
		GID:     DefaultGID,
	}
}

// Validate checks the sheet id.
func (s Source) Validate() error {
	return ValidateSheetID(s.SheetID)
}

// ValidateSheetID reports whether id can be used in a sheet URL.
func ValidateSheetID(id string) error {
	if !sheetIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidSheetID, id)
	}
	return nil
}

// BuildURL returns the gviz JSON query URL of a source under base.
// An empty base uses DefaultBaseURL.
func BuildURL(base string, src Source) string {
	if base == "" {
		base = DefaultBaseURL
	}
	gid := src.GID
	if gid == "" {
		gid = DefaultGID
	}

	u := base + "/spreadsheets/d/" + url.PathEscape(src.SheetID) +
		"/gviz/tq?tqx=out:json&tq&gid=" + url.QueryEscape(gid)
	if src.Range != "" {
		u += "&range=" + url.QueryEscape(src.Range)
	}
	return u
}
