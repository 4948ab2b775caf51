package report

import "errors"

var (
	// ErrInvalidSignedFilter is returned when a signed filter is not one of
	// yes, no or all.
	ErrInvalidSignedFilter = errors.New("invalid signed filter (must be yes, no or all)")

	// ErrInvalidSortKey is returned for an unknown member sort key.
	ErrInvalidSortKey = errors.New("invalid sort key (must be name, party, state, signed or position)")

	// ErrInvalidPagination is returned when limit or offset is negative.
	ErrInvalidPagination = errors.New("limit and offset must not be negative")

	// ErrNilSnapshot is returned when a view is requested without a snapshot.
	ErrNilSnapshot = errors.New("snapshot is nil")
)
