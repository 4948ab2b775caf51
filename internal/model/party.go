package model

// PartyAggregate holds the signature counts of one party.
// Signed + NotSigned always equals Total.
type PartyAggregate struct {
	// Party is the party name the rows were grouped by.
	Party string `json:"party"`

	// Signed is the number of members who signed.
	Signed int `json:"signed"`

	// NotSigned is the number of members who did not sign.
	NotSigned int `json:"not_signed"`

	// Total is the number of members in the party.
	Total int `json:"total"`
}

// Ratio returns Signed/Total, or 0 for an empty aggregate.
func (p PartyAggregate) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Signed) / float64(p.Total)
}

// Totals holds the signature counts across every party.
type Totals struct {
	// Signed is the total number of signatures.
	Signed int `json:"signed"`

	// NotSigned is the number of abstentions.
	NotSigned int `json:"not_signed"`

	// Total is the number of members.
	Total int `json:"total"`
}

// Ratio returns Signed/Total, or 0 when there are no members.
func (t Totals) Ratio() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Signed) / float64(t.Total)
}

// Add counts one member.
func (t *Totals) Add(signed bool) {
	t.Total++
	if signed {
		t.Signed++
	} else {
		t.NotSigned++
	}
}
