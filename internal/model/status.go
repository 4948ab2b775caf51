package model

import "fmt"

// LoadStatus is the outcome of loading a sheet source.
// It keeps "no data" apart from "malformed data" and from network failures.
type LoadStatus int

const (
	// StatusPending means the load has not finished.
	StatusPending LoadStatus = iota

	// StatusOK means the payload was parsed into a table.
	StatusOK

	// StatusNoData means the payload was empty or carried no embedded JSON.
	// The snapshot holds an empty table.
	StatusNoData

	// StatusParseError means the embedded JSON was malformed or the query
	// endpoint reported an error.
	StatusParseError

	// StatusTransportError means the HTTP request failed.
	StatusTransportError
)

// String returns the snake_case name used in reports.
func (s LoadStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no_data"
	case StatusParseError:
		return "parse_error"
	case StatusTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the status is a parse or transport failure.
func (s LoadStatus) IsFailure() bool {
	return s == StatusParseError || s == StatusTransportError
}

// MarshalText implements encoding.TextMarshaler.
func (s LoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LoadStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*s = StatusPending
	case "ok":
		*s = StatusOK
	case "no_data":
		*s = StatusNoData
	case "parse_error":
		*s = StatusParseError
	case "transport_error":
		*s = StatusTransportError
	default:
		return fmt.Errorf("unknown load status %q", text)
	}
	return nil
}
