package report

import (
	"strconv"
	"time"

	"github.com/nao1215/signboard/internal/model"
)

// SourceSummary is the summary view of one loaded source: overall totals
// and the ranked per-party table.
type SourceSummary struct {
	Source          string                 `json:"source"`
	SheetID         string                 `json:"sheet_id"`
	GID             string                 `json:"gid"`
	Range           string                 `json:"range,omitempty"`
	FetchedAt       time.Time              `json:"fetched_at"`
	Status          model.LoadStatus       `json:"status"`
	Totals          model.Totals           `json:"totals"`
	Parties         []model.PartyAggregate `json:"parties"`
	ShapeMismatches int                    `json:"shape_mismatches"`
	TimedOut        bool                   `json:"timed_out,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

// NewSourceSummary builds the summary view of a snapshot.
func NewSourceSummary(snap *model.Snapshot) SourceSummary {
	parties := snap.Parties
	if parties == nil {
		parties = []model.PartyAggregate{}
	}
	return SourceSummary{
		Source:          snap.Source,
		SheetID:         snap.SheetID,
		GID:             snap.GID,
		Range:           snap.Range,
		FetchedAt:       snap.FetchedAt,
		Status:          snap.Status,
		Totals:          snap.Totals,
		Parties:         parties,
		ShapeMismatches: snap.ShapeMismatches,
		TimedOut:        snap.TimedOut,
		Error:           snap.ErrorMessage,
	}
}

// NewSourceSummaries builds one summary per snapshot. Nil snapshots are
// skipped.
func NewSourceSummaries(snaps []*model.Snapshot) []SourceSummary {
	out := make([]SourceSummary, 0, len(snaps))
	for _, s := range snaps {
		if s == nil {
			continue
		}
		out = append(out, NewSourceSummary(s))
	}
	return out
}

// MembersView is a filtered, ordered page of a snapshot's members.
type MembersView struct {
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetched_at"`
	Status    model.LoadStatus `json:"status"`

	// Total is the number of members in the snapshot.
	Total int `json:"total"`

	// Matched is the number of members that passed the filters,
	// before offset and limit were applied.
	Matched int `json:"matched"`

	Offset int `json:"offset"`
	Limit  int `json:"limit,omitempty"`

	Members []model.Member `json:"members"`

	// Parties are the aggregates of the whole snapshot.
	Parties []model.PartyAggregate `json:"parties"`

	ShapeMismatches int    `json:"shape_mismatches"`
	Error           string `json:"error,omitempty"`
}

func newMembersView(snap *model.Snapshot) *MembersView {
	parties := snap.Parties
	if parties == nil {
		parties = []model.PartyAggregate{}
	}
	return &MembersView{
		Source:          snap.Source,
		FetchedAt:       snap.FetchedAt,
		Status:          snap.Status,
		Total:           len(snap.Members),
		Members:         []model.Member{},
		Parties:         parties,
		ShapeMismatches: snap.ShapeMismatches,
		Error:           snap.ErrorMessage,
	}
}

// MemberDetail is the detail view of a single member.
type MemberDetail struct {
	Source string       `json:"source"`
	Member model.Member `json:"member"`
}

// NewMemberDetail looks up the member at a 1-based position.
// It returns false when the position is out of range.
func NewMemberDetail(snap *model.Snapshot, position int) (*MemberDetail, bool) {
	if snap == nil {
		return nil, false
	}
	m, ok := snap.MemberAt(position)
	if !ok {
		return nil, false
	}
	return &MemberDetail{Source: snap.Source, Member: m}, true
}

// statusText is the human-readable load status shared by the text writers.
func statusText(status model.LoadStatus, timedOut bool, errMsg string) string {
	switch {
	case timedOut:
		return "Timed out"
	case status == model.StatusNoData:
		return "No data (the sheet returned nothing to show)"
	case status.IsFailure():
		if errMsg != "" {
			return "Error (" + status.String() + ") - " + errMsg
		}
		return "Error (" + status.String() + ")"
	case status == model.StatusOK:
		return "Complete"
	default:
		return status.String()
	}
}

// percent formats a ratio in [0,1] as a percentage with one decimal.
func percent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}

// partyLabel names a party for display. Members without a party are
// grouped under the empty name.
func partyLabel(party string) string {
	if party == "" {
		return "(none)"
	}
	return party
}
