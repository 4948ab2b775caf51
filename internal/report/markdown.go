package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/signboard/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// Party breakdowns are drawn as mermaid pie charts.
type MarkdownWriter struct {
	baseWriter

	// charts toggles the per-party pie charts.
	charts bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithCharts enables or disables the per-party pie charts.
func WithCharts(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.charts = enabled
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		charts:     true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSummary outputs each source's totals, party table and charts.
func (w *MarkdownWriter) WriteSummary(summaries []SourceSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Petition Signatures")
	md.PlainText("")

	if len(summaries) == 0 {
		md.Note("No sources loaded.")
		md.PlainText("")
	}
	for _, s := range summaries {
		w.writeSourceSummary(md, s)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSourceSummary(md *markdown.Markdown, s SourceSummary) {
	md.H2("Source: " + s.Source)
	md.PlainText("")

	rows := [][]string{
		{"Sheet", "`" + s.SheetID + "` (gid " + s.GID + ")"},
		{"Fetched", s.FetchedAt.Format("2006-01-02 15:04:05 MST")},
		{"Status", w.getStatusText(s.Status, s.TimedOut, s.Error)},
	}
	if s.Range != "" {
		rows = append(rows, []string{"Range", "`" + s.Range + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if !w.writeStatusAlert(md, s.Status, s.Error, s.ShapeMismatches) {
		return
	}

	md.PlainText("### Totals")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Signatures", "Abstentions", "Total", "Signed"},
		Rows: [][]string{{
			strconv.Itoa(s.Totals.Signed),
			strconv.Itoa(s.Totals.NotSigned),
			strconv.Itoa(s.Totals.Total),
			percent(s.Totals.Ratio()),
		}},
	})
	md.PlainText("")

	md.PlainText("### Parties")
	md.PlainText("")
	if len(s.Parties) == 0 {
		md.PlainText("No parties.")
		md.PlainText("")
		return
	}

	rows = make([][]string, len(s.Parties))
	for i, p := range s.Parties {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			partyLabel(p.Party),
			strconv.Itoa(p.Signed),
			strconv.Itoa(p.NotSigned),
			strconv.Itoa(p.Total),
			percent(p.Ratio()),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Party", "Signed", "Not signed", "Total", "Ratio"},
		Rows:   rows,
	})
	md.PlainText("")

	if w.charts {
		for _, p := range s.Parties {
			w.writePieChart(md, partyLabel(p.Party), p.Signed, p.NotSigned)
		}
	}
}

// writePieChart writes a mermaid pie chart of one party's signatures.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, title string, signed, notSigned int) {
	if signed+notSigned == 0 {
		return
	}
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(title),
		piechart.WithShowData(true),
	)
	chart.LabelAndIntValue("Signed", uint64(signed))
	chart.LabelAndIntValue("Not signed", uint64(notSigned))

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeStatusAlert writes an alert for unusual load states. It returns
// false when there is no data to render below the alert.
func (w *MarkdownWriter) writeStatusAlert(md *markdown.Markdown, status model.LoadStatus, errMsg string, mismatches int) bool {
	switch {
	case status.IsFailure():
		if errMsg == "" {
			errMsg = status.String()
		}
		md.Cautionf("Loading failed: %s", errMsg)
		md.PlainText("")
		return false
	case status == model.StatusNoData:
		md.Cautionf("The sheet returned no data. This is not the same as zero signatures.")
		md.PlainText("")
		return false
	}
	if mismatches > 0 {
		md.Warningf("%d row(s) did not match the column layout and were read with blank fields.", mismatches)
		md.PlainText("")
	}
	return true
}

// getStatusText returns the status text of a load.
func (w *MarkdownWriter) getStatusText(status model.LoadStatus, timedOut bool, errMsg string) string {
	switch {
	case timedOut:
		return "⚠️ Timed Out"
	case status == model.StatusNoData:
		return "⚪ No data"
	case status == model.StatusOK:
		return "✅ Complete"
	case errMsg != "":
		return "❌ Error - " + errMsg
	default:
		return "❌ " + status.String()
	}
}

// WriteMembers outputs the members listing as a Markdown table.
func (w *MarkdownWriter) WriteMembers(view *MembersView) (int, error) {
	if view == nil {
		return 0, ErrNilSnapshot
	}
	md := markdown.NewMarkdown(w.output)

	md.H1("Members: " + view.Source)
	md.PlainText("")
	md.PlainTextf("Showing %d of %d matching members (%d total).",
		len(view.Members), view.Matched, view.Total)
	md.PlainText("")

	if !w.writeStatusAlert(md, view.Status, view.Error, view.ShapeMismatches) {
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	if len(view.Members) == 0 {
		md.PlainText("No members.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(view.Members))
		for i, m := range view.Members {
			rows[i] = []string{
				strconv.Itoa(m.Position),
				"`" + m.ID + "`",
				m.Name,
				partyLabel(m.Party),
				m.State,
				m.SignedText(),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "ID", "Name", "Party", "State", "Signed"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteMember outputs one member's details.
func (w *MarkdownWriter) WriteMember(detail *MemberDetail) (int, error) {
	if detail == nil {
		return 0, ErrNilSnapshot
	}
	m := detail.Member
	md := markdown.NewMarkdown(w.output)

	md.H1(m.Name)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Party", partyLabel(m.Party)},
			{"State", m.State},
			{"Signed", m.SignedText()},
			{"Email", orDash(m.Email)},
			{"Position", strconv.Itoa(m.Position) + " (" + detail.Source + ")"},
		},
	})
	md.PlainText("")

	if len(m.SocialLinks) > 0 {
		md.H2("Social links")
		md.PlainText("")
		md.BulletList(m.SocialLinks...)
		md.PlainText("")
	}
	if m.PhotoURL != "" {
		md.PlainText("![" + m.Name + "](" + m.PhotoURL + ")")
		md.PlainText("")
	}
	if !m.Complete {
		md.Note("The source row was incomplete; some fields are blank.")
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [signboard](https://github.com/nao1215/signboard)*")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
