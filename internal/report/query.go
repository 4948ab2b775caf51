package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nao1215/signboard/internal/model"
)

// SignedFilter selects members by signature state.
type SignedFilter int

const (
	// SignedAll keeps every member.
	SignedAll SignedFilter = iota
	// SignedYes keeps members who signed.
	SignedYes
	// SignedNo keeps members who did not sign.
	SignedNo
)

// String returns the flag spelling of the filter.
func (f SignedFilter) String() string {
	switch f {
	case SignedYes:
		return "yes"
	case SignedNo:
		return "no"
	default:
		return "all"
	}
}

// ParseSignedFilter parses "yes", "no" or "all". The empty string means all.
func ParseSignedFilter(s string) (SignedFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SignedAll, nil
	case "yes", "true":
		return SignedYes, nil
	case "no", "false":
		return SignedNo, nil
	default:
		return SignedAll, fmt.Errorf("%w: %q", ErrInvalidSignedFilter, s)
	}
}

// SortKey names the field members are ordered by.
type SortKey string

// Supported sort keys.
const (
	SortPosition SortKey = "position"
	SortName     SortKey = "name"
	SortParty    SortKey = "party"
	SortState    SortKey = "state"
	SortSigned   SortKey = "signed"
)

// ParseSortKey validates a sort key. The empty string means position.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "":
		return SortPosition, nil
	case SortPosition, SortName, SortParty, SortState, SortSigned:
		return key, nil
	default:
		return SortPosition, fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// MemberQuery describes which members a listing shows and in what order.
// Filtering, sorting and slicing all happen on the loaded snapshot.
type MemberQuery struct {
	// Party keeps only members of this party, compared with Unicode case
	// folding. Empty keeps all.
	Party string

	// State keeps only members of this state, compared like Party.
	State string

	// Signed filters by signature state.
	Signed SignedFilter

	// SortBy is the ordering field.
	SortBy SortKey

	// Desc reverses the ordering.
	Desc bool

	// Limit caps the number of members returned. Zero means no cap.
	Limit int

	// Offset skips this many matching members.
	Offset int

	// Locale drives text comparison when sorting.
	Locale language.Tag
}

// Validate checks the query for values that cannot be applied.
func (q MemberQuery) Validate() error {
	if q.Limit < 0 || q.Offset < 0 {
		return ErrInvalidPagination
	}
	if _, err := ParseSortKey(string(q.SortBy)); err != nil {
		return err
	}
	return nil
}

// Select applies the query to a snapshot and returns the resulting view.
func Select(snap *model.Snapshot, q MemberQuery) (*MembersView, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	fold := cases.Fold()
	party := fold.String(strings.TrimSpace(q.Party))
	state := fold.String(strings.TrimSpace(q.State))

	matched := make([]model.Member, 0, len(snap.Members))
	for _, m := range snap.Members {
		if party != "" && fold.String(m.Party) != party {
			continue
		}
		if state != "" && fold.String(m.State) != state {
			continue
		}
		if q.matchesSigned(m) {
			matched = append(matched, m)
		}
	}

	sortMembers(matched, q.SortBy, q.Desc, q.Locale)

	view := newMembersView(snap)
	view.Matched = len(matched)
	view.Offset = q.Offset
	view.Limit = q.Limit
	view.Members = page(matched, q.Offset, q.Limit)
	return view, nil
}

func (q MemberQuery) matchesSigned(m model.Member) bool {
	switch q.Signed {
	case SignedYes:
		return m.Signed
	case SignedNo:
		return !m.Signed
	default:
		return true
	}
}

func page(members []model.Member, offset, limit int) []model.Member {
	if offset >= len(members) {
		return []model.Member{}
	}
	members = members[offset:]
	if limit > 0 && limit < len(members) {
		members = members[:limit]
	}
	return members
}

// sortMembers orders members in place. Equal keys keep position order.
func sortMembers(members []model.Member, key SortKey, desc bool, tag language.Tag) {
	if key == "" {
		key = SortPosition
	}
	col := collate.New(tag, collate.IgnoreCase)

	cmp := func(a, b model.Member) int {
		switch key {
		case SortName:
			return col.CompareString(a.Name, b.Name)
		case SortParty:
			return col.CompareString(a.Party, b.Party)
		case SortState:
			return col.CompareString(a.State, b.State)
		case SortSigned:
			// Signed members first.
			switch {
			case a.Signed == b.Signed:
				return 0
			case a.Signed:
				return -1
			default:
				return 1
			}
		default:
			return a.Position - b.Position
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		c := cmp(members[i], members[j])
		if c == 0 {
			return members[i].Position < members[j].Position
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
