package sheet

import "errors"

var (
	// ErrMalformedJSON is returned when the text inside the wrapper is not
	// valid JSON.
	ErrMalformedJSON = errors.New("malformed sheet response")

	// ErrQueryFailed is returned when the envelope reports status "error".
	ErrQueryFailed = errors.New("sheet query failed")
)
