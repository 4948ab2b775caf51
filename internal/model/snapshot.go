package model

import "time"

// DefaultSourceName is the name of the built-in sheet source.
const DefaultSourceName = "default"

// Snapshot is the result of one load cycle of a sheet source.
// A snapshot is built once per load and replaced wholesale by the next one.
type Snapshot struct {
	// Source is the configured source name.
	Source string `json:"source"`

	// SheetID is the spreadsheet identifier.
	SheetID string `json:"sheet_id"`

	// GID is the worksheet identifier.
	GID string `json:"gid"`

	// Range is the optional cell range, e.g. "A:I".
	Range string `json:"range,omitempty"`

	// URL is the query endpoint that was requested.
	URL string `json:"url"`

	// FetchedAt is when the load started.
	FetchedAt time.Time `json:"fetched_at"`

	// Status is the load outcome.
	Status LoadStatus `json:"status"`

	// Raw is the response body as received. Not serialized.
	Raw []byte `json:"-"`

	// Table is the parsed table. Not serialized; Columns and Members
	// carry what reports need.
	Table *Table `json:"-"`

	// Columns are the column labels of the table.
	Columns []string `json:"columns"`

	// Members are the named records built from the table rows.
	Members []Member `json:"members"`

	// Parties are the per-party aggregates in display order.
	Parties []PartyAggregate `json:"parties"`

	// Totals are the counts across all parties.
	Totals Totals `json:"totals"`

	// ShapeMismatches is the number of rows whose cell count did not match
	// the column count.
	ShapeMismatches int `json:"shape_mismatches"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut is true when the load was cancelled.
	TimedOut bool `json:"timed_out"`

	// Error is the failure, if any. Not serialized; see ErrorMessage.
	Error error `json:"-"`

	// ErrorMessage is the text of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewSnapshot creates a pending snapshot for a source.
func NewSnapshot(source, sheetID, url string) *Snapshot {
	return &Snapshot{
		Source:    source,
		SheetID:   sheetID,
		URL:       url,
		FetchedAt: time.Now(),
		Status:    StatusPending,
		Table:     NewEmptyTable(),
		Columns:   []string{},
		Members:   []Member{},
		Parties:   []PartyAggregate{},
	}
}

// SetError records a failure with its status.
func (s *Snapshot) SetError(status LoadStatus, err error) {
	s.Status = status
	s.Error = err
	if err != nil {
		s.ErrorMessage = err.Error()
	}
}

// HasData reports whether the snapshot holds at least one member.
func (s *Snapshot) HasData() bool {
	return s.Status == StatusOK && len(s.Members) > 0
}

// MemberAt returns the member at a 1-based position.
func (s *Snapshot) MemberAt(position int) (Member, bool) {
	if position < 1 || position > len(s.Members) {
		return Member{}, false
	}
	return s.Members[position-1], true
}
