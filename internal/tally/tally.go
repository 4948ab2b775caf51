package tally

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nao1215/signboard/internal/model"
)

// Tally is an insertion-ordered mapping from party name to its aggregate.
// The zero Tally is empty and ready to use.
type Tally struct {
	order  []string
	groups map[string]*model.PartyAggregate
	totals model.Totals
}

// New returns an empty Tally.
func New() *Tally {
	return &Tally{groups: make(map[string]*model.PartyAggregate)}
}

// Aggregate counts signatures per party across every row of the table.
// Party names are trimmed of surrounding whitespace before grouping, so
// "PT" and "PT " count as one party. A missing party cell groups under "".
func Aggregate(t *model.Table) *Tally {
	tally := New()
	if t == nil {
		return tally
	}
	for _, row := range t.Rows {
		party := strings.TrimSpace(row.Cell(model.ColumnParty).Text())
		tally.Add(party, row.Cell(model.ColumnSigned).IsTrue())
	}
	return tally
}

// AggregateMembers counts signatures per party across members.
// It agrees with Aggregate on the table the members were built from.
func AggregateMembers(members []model.Member) *Tally {
	tally := New()
	for _, m := range members {
		tally.Add(m.Party, m.Signed)
	}
	return tally
}

// Add counts one member of a party.
func (t *Tally) Add(party string, signed bool) {
	if t.groups == nil {
		t.groups = make(map[string]*model.PartyAggregate)
	}
	agg, ok := t.groups[party]
	if !ok {
		agg = &model.PartyAggregate{Party: party}
		t.groups[party] = agg
		t.order = append(t.order, party)
	}
	agg.Total++
	if signed {
		agg.Signed++
	} else {
		agg.NotSigned++
	}
	t.totals.Add(signed)
}

// Len returns the number of parties.
func (t *Tally) Len() int {
	return len(t.order)
}

// Get returns the aggregate of a party.
func (t *Tally) Get(party string) (model.PartyAggregate, bool) {
	agg, ok := t.groups[party]
	if !ok {
		return model.PartyAggregate{}, false
	}
	return *agg, true
}

// Parties returns the aggregates in first-seen order.
func (t *Tally) Parties() []model.PartyAggregate {
	out := make([]model.PartyAggregate, 0, len(t.order))
	for _, party := range t.order {
		out = append(out, *t.groups[party])
	}
	return out
}

// Map returns the aggregates keyed by party.
func (t *Tally) Map() map[string]model.PartyAggregate {
	out := make(map[string]model.PartyAggregate, len(t.order))
	for _, party := range t.order {
		out[party] = *t.groups[party]
	}
	return out
}

// Totals returns the counts across all parties.
func (t *Tally) Totals() model.Totals {
	return t.totals
}

// Ranked returns the aggregates sorted by signed ratio, highest first.
// Equal ratios are ordered by party name using the collation rules of tag.
func (t *Tally) Ranked(tag language.Tag) []model.PartyAggregate {
	return Rank(t.Parties(), tag)
}

// Rank sorts a copy of parties by signed ratio, highest first, breaking
// ties by collated party name.
func Rank(parties []model.PartyAggregate, tag language.Tag) []model.PartyAggregate {
	out := make([]model.PartyAggregate, len(parties))
	copy(out, parties)

	// collate.Collator is not safe for concurrent use.
	col := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if byRatio := compareRatio(out[i], out[j]); byRatio != 0 {
			return byRatio > 0
		}
		return col.CompareString(out[i].Party, out[j].Party) < 0
	})
	return out
}

// compareRatio compares signed/total without floating point.
// Empty aggregates rank as ratio 0.
func compareRatio(a, b model.PartyAggregate) int {
	if a.Total == 0 || b.Total == 0 {
		switch {
		case a.Total == 0 && b.Total == 0:
			return 0
		case a.Total == 0:
			if b.Signed > 0 {
				return -1
			}
			return 0
		default:
			if a.Signed > 0 {
				return 1
			}
			return 0
		}
	}
	lhs := a.Signed * b.Total
	rhs := b.Signed * a.Total
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	default:
		return 0
	}
}
