package report

import (
	"time"

	"golang.org/x/text/language"

	"github.com/nao1215/signboard/internal/model"
	"github.com/nao1215/signboard/internal/tally"
)

// createTestSnapshot creates a loaded snapshot with five members.
func createTestSnapshot() *model.Snapshot {
	snap := model.NewSnapshot("default", "sheet123", "https://docs.google.com/spreadsheets/d/sheet123/gviz/tq")
	snap.GID = "0"
	snap.FetchedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap.Status = model.StatusOK
	snap.Columns = []string{"Nome", "Partido", "UF", "Assinou", "Rede A", "Rede B", "Email", "Foto"}
	snap.Members = []model.Member{
		newTestMember(1, "Zélia Souza", "PT", "SP", true),
		newTestMember(2, "Ana Lima", "PL", "RJ", false),
		newTestMember(3, "Bruno Alves", "PT", "MG", false),
		newTestMember(4, "Érico Dias", "PSOL", "SP", true),
		newTestMember(5, "carla Nunes", "PL", "BA", true),
	}
	snap.Members[0].SocialLinks = []string{"https://x.com/zelia", "https://instagram.com/zelia"}
	snap.Members[0].Email = "zelia@example.com"
	snap.Members[0].PhotoURL = "https://example.com/zelia.jpg"

	t := tally.AggregateMembers(snap.Members)
	snap.Parties = t.Ranked(language.BrazilianPortuguese)
	snap.Totals = t.Totals()
	return snap
}

func newTestMember(pos int, name, party, state string, signed bool) model.Member {
	return model.Member{
		Position: pos,
		ID:       model.MemberID(name, party, state),
		Name:     name,
		Party:    party,
		State:    state,
		Signed:   signed,
		Complete: true,
	}
}

func createTestSummaries() []SourceSummary {
	return NewSourceSummaries([]*model.Snapshot{createTestSnapshot()})
}

func createTestMembersView() *MembersView {
	view, err := Select(createTestSnapshot(), MemberQuery{Locale: language.BrazilianPortuguese})
	if err != nil {
		panic(err)
	}
	return view
}

func positions(members []model.Member) []int {
	out := make([]int, len(members))
	for i, m := range members {
		out[i] = m.Position
	}
	return out
}
