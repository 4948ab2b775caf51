package gsheet

import "errors"

// Fetch errors. Every error returned by Client.Fetch wraps ErrTransport,
// so callers can tell transport failures from parse failures with errors.Is.
var (
	// ErrTransport wraps any failure to obtain a response body.
	ErrTransport = errors.New("sheet transport error")

	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrNotPublic is returned when the endpoint answers with an HTML page
	// instead of a query response, which happens when the sheet is not
	// shared publicly.
	ErrNotPublic = errors.New("sheet is not publicly readable")

	// ErrInvalidProxyAddress is returned when the proxy address is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidSheetID is returned when a sheet id is empty or has
	// characters outside [A-Za-z0-9_-].
	ErrInvalidSheetID = errors.New("invalid sheet id")
)
