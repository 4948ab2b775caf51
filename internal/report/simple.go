package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/signboard/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// Plain ASCII formatting keeps the output safe to pipe into files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to list are shown.
	showEmpty bool

	// verbose adds source details (sheet id, fetch time) to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteSummary outputs each source's totals and ranked party table.
func (w *SimpleWriter) WriteSummary(summaries []SourceSummary) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "PETITION SIGNATURES")
	if len(summaries) == 0 {
		sb.WriteString("No sources loaded.\n\n")
	}
	for _, s := range summaries {
		w.writeSourceSummary(&sb, s)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeSourceSummary(sb *strings.Builder, s SourceSummary) {
	w.writeSection(sb, "SOURCE: "+s.Source)

	if w.verbose {
		fmt.Fprintf(sb, "Sheet ID:     %s (gid %s)\n", s.SheetID, s.GID)
		if s.Range != "" {
			fmt.Fprintf(sb, "Range:        %s\n", s.Range)
		}
		fmt.Fprintf(sb, "Fetched:      %s\n", s.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(sb, "Status:       %s\n", statusText(s.Status, s.TimedOut, s.Error))
	if s.ShapeMismatches > 0 {
		fmt.Fprintf(sb, "Warning:      %d row(s) did not match the column layout\n", s.ShapeMismatches)
	}
	sb.WriteString("\n")

	if s.Status.IsFailure() || s.Status == model.StatusNoData {
		return
	}

	fmt.Fprintf(sb, "  Signatures:  %d\n", s.Totals.Signed)
	fmt.Fprintf(sb, "  Abstentions: %d\n", s.Totals.NotSigned)
	fmt.Fprintf(sb, "  Total:       %d (%s signed)\n", s.Totals.Total, percent(s.Totals.Ratio()))
	sb.WriteString("\n")

	if len(s.Parties) == 0 {
		if w.showEmpty {
			sb.WriteString("  No parties\n\n")
		}
		return
	}

	fmt.Fprintf(sb, "  %-16s %8s %10s %8s %8s\n", "PARTY", "SIGNED", "NOT SIGNED", "TOTAL", "RATIO")
	for _, p := range s.Parties {
		fmt.Fprintf(sb, "  %-16s %8d %10d %8d %8s\n",
			partyLabel(p.Party), p.Signed, p.NotSigned, p.Total, percent(p.Ratio()))
	}
	sb.WriteString("\n")
}

// WriteMembers outputs the members listing as a fixed-width table.
func (w *SimpleWriter) WriteMembers(view *MembersView) (int, error) {
	if view == nil {
		return 0, ErrNilSnapshot
	}
	var sb strings.Builder

	w.writeBanner(&sb, "MEMBERS")
	fmt.Fprintf(&sb, "Source:       %s\n", view.Source)
	fmt.Fprintf(&sb, "Status:       %s\n", statusText(view.Status, false, view.Error))
	fmt.Fprintf(&sb, "Showing:      %d of %d matching (%d total)\n", len(view.Members), view.Matched, view.Total)
	if view.ShapeMismatches > 0 {
		fmt.Fprintf(&sb, "Warning:      %d row(s) did not match the column layout\n", view.ShapeMismatches)
	}
	sb.WriteString("\n")

	if len(view.Members) == 0 {
		sb.WriteString("  No members\n\n")
	} else {
		fmt.Fprintf(&sb, "  %4s  %-30s %-10s %-6s %-6s\n", "#", "NAME", "PARTY", "STATE", "SIGNED")
		for _, m := range view.Members {
			fmt.Fprintf(&sb, "  %4d  %-30s %-10s %-6s %-6s\n",
				m.Position, m.Name, partyLabel(m.Party), m.State, m.SignedText())
			if w.verbose {
				fmt.Fprintf(&sb, "        id: %s\n", m.ID)
			}
		}
		sb.WriteString("\n")
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteMember outputs one member's details.
func (w *SimpleWriter) WriteMember(detail *MemberDetail) (int, error) {
	if detail == nil {
		return 0, ErrNilSnapshot
	}
	m := detail.Member
	var sb strings.Builder

	w.writeBanner(&sb, "MEMBER")
	fmt.Fprintf(&sb, "Name:         %s\n", m.Name)
	fmt.Fprintf(&sb, "Party:        %s\n", partyLabel(m.Party))
	fmt.Fprintf(&sb, "State:        %s\n", m.State)
	fmt.Fprintf(&sb, "Signed:       %s\n", m.SignedText())
	fmt.Fprintf(&sb, "Position:     %d (%s)\n", m.Position, detail.Source)
	sb.WriteString("\n")

	hasContact := len(m.SocialLinks) > 0 || m.Email != ""
	if hasContact || w.showEmpty {
		w.writeSection(&sb, "CONTACT")
		if !hasContact {
			sb.WriteString("  No contact details\n")
		}
		for _, link := range m.SocialLinks {
			fmt.Fprintf(&sb, "  [+] %s\n", link)
		}
		if m.Email != "" {
			fmt.Fprintf(&sb, "  Email: %s\n", m.Email)
		}
		sb.WriteString("\n")
	}
	if m.PhotoURL != "" {
		fmt.Fprintf(&sb, "Photo:        %s\n\n", m.PhotoURL)
	}
	if !m.Complete {
		sb.WriteString("Note: the source row was incomplete; some fields are blank.\n\n")
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := (ruleWidth - len(title)) / 2
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by signboard\n")
	sb.WriteString("https://github.com/nao1215/signboard\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
