package model

import "strings"

// Fixed column positions of a petition sheet row.
const (
	ColumnName = iota
	ColumnParty
	ColumnState
	ColumnSigned
	ColumnSocialA
	ColumnSocialB
	ColumnEmail
	ColumnPhoto

	// MemberColumnCount is the number of cells a complete member row has.
	MemberColumnCount
)

// Member is a legislator record built once from a Table row.
// Rows shorter than MemberColumnCount produce a Member with blank fields
// and Complete set to false.
type Member struct {
	// Position is the 1-based row position in the source table.
	Position int `json:"position"`

	// ID is the identity marker "name_party_state".
	ID string `json:"id"`

	// Name is the legislator's name.
	Name string `json:"name"`

	// Party is the party acronym. Empty when the cell is absent.
	Party string `json:"party"`

	// State is the state the legislator represents.
	State string `json:"state"`

	// Signed reports whether the legislator signed the petition.
	Signed bool `json:"signed"`

	// SocialLinks holds the non-empty social profile links.
	SocialLinks []string `json:"social_links,omitempty"`

	// Email is the public contact address.
	Email string `json:"email,omitempty"`

	// PhotoURL is the portrait URL.
	PhotoURL string `json:"photo_url,omitempty"`

	// Complete is false when the source row had fewer than
	// MemberColumnCount cells.
	Complete bool `json:"complete"`
}

// MemberID returns the identity marker used to key a member.
func MemberID(name, party, state string) string {
	return name + "_" + party + "_" + state
}

// NewMember builds a Member from a row. Missing cells become blank fields
// and text fields are trimmed of surrounding whitespace.
func NewMember(position int, row Row) Member {
	name := strings.TrimSpace(row.Cell(ColumnName).Text())
	party := strings.TrimSpace(row.Cell(ColumnParty).Text())
	state := strings.TrimSpace(row.Cell(ColumnState).Text())

	m := Member{
		Position: position,
		ID:       MemberID(name, party, state),
		Name:     name,
		Party:    party,
		State:    state,
		Signed:   row.Cell(ColumnSigned).IsTrue(),
		Email:    strings.TrimSpace(row.Cell(ColumnEmail).Text()),
		PhotoURL: strings.TrimSpace(row.Cell(ColumnPhoto).Text()),
		Complete: row.Len() >= MemberColumnCount,
	}

	for _, idx := range []int{ColumnSocialA, ColumnSocialB} {
		if link := strings.TrimSpace(row.Cell(idx).Text()); link != "" {
			m.SocialLinks = append(m.SocialLinks, link)
		}
	}

	return m
}

// NewMembers builds one Member per table row, in row order.
func NewMembers(t *Table) []Member {
	if t == nil {
		return []Member{}
	}
	members := make([]Member, len(t.Rows))
	for i, row := range t.Rows {
		members[i] = NewMember(i+1, row)
	}
	return members
}

// SignedText returns "yes" or "no".
func (m Member) SignedText() string {
	if m.Signed {
		return "yes"
	}
	return "no"
}
