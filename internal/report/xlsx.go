package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/signboard/internal/model"
)

// Sheet names used in exported workbooks.
const (
	SheetMembers = "Members"
	SheetParties = "Parties"
	SheetSummary = "Summary"
	SheetMember  = "Member"
)

// XLSXWriter outputs reports as an Excel workbook.
// Every data sheet has a bold header row with an autofilter.
type XLSXWriter struct {
	baseWriter
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{baseWriter: newBaseWriter(output)}
}

// WriteSummary writes a "Summary" sheet of totals and a "Parties" sheet
// with one row per source and party.
func (w *XLSXWriter) WriteSummary(summaries []SourceSummary) (int, error) {
	summary := [][]any{}
	parties := [][]any{}
	for _, s := range summaries {
		summary = append(summary, []any{
			s.Source, s.Status.String(), s.Totals.Signed, s.Totals.NotSigned, s.Totals.Total,
			s.Totals.Ratio(), s.ShapeMismatches, s.Error,
		})
		for i, p := range s.Parties {
			parties = append(parties, []any{s.Source, i + 1, p.Party, p.Signed, p.NotSigned, p.Total, p.Ratio()})
		}
	}

	return w.write([]sheetData{
		{
			name:   SheetSummary,
			header: []any{"Source", "Status", "Signatures", "Abstentions", "Total", "Ratio", "Shape mismatches", "Error"},
			rows:   summary,
		},
		{
			name:   SheetParties,
			header: []any{"Source", "Rank", "Party", "Signed", "Not signed", "Total", "Ratio"},
			rows:   parties,
		},
	})
}

// WriteMembers writes a "Members" sheet with the listed members and a
// "Parties" sheet with the snapshot's ranked aggregates.
func (w *XLSXWriter) WriteMembers(view *MembersView) (int, error) {
	if view == nil {
		return 0, ErrNilSnapshot
	}
	members := make([][]any, len(view.Members))
	for i, m := range view.Members {
		members[i] = memberRow(m)
	}

	return w.write([]sheetData{
		{name: SheetMembers, header: memberHeader(), rows: members},
		{
			name:   SheetParties,
			header: []any{"Rank", "Party", "Signed", "Not signed", "Total", "Ratio"},
			rows:   partyRows(view.Parties),
		},
	})
}

// WriteMember writes a single-row "Member" sheet.
func (w *XLSXWriter) WriteMember(detail *MemberDetail) (int, error) {
	if detail == nil {
		return 0, ErrNilSnapshot
	}
	return w.write([]sheetData{
		{name: SheetMember, header: memberHeader(), rows: [][]any{memberRow(detail.Member)}},
	})
}

type sheetData struct {
	name   string
	header []any
	rows   [][]any
}

func memberHeader() []any {
	return []any{"#", "ID", "Name", "Party", "State", "Signed", "Social A", "Social B", "Email", "Photo", "Complete"}
}

func memberRow(m model.Member) []any {
	var socialA, socialB string
	if len(m.SocialLinks) > 0 {
		socialA = m.SocialLinks[0]
	}
	if len(m.SocialLinks) > 1 {
		socialB = m.SocialLinks[1]
	}
	return []any{
		m.Position, m.ID, m.Name, m.Party, m.State, m.SignedText(),
		socialA, socialB, m.Email, m.PhotoURL, m.Complete,
	}
}

func partyRows(parties []model.PartyAggregate) [][]any {
	rows := make([][]any, len(parties))
	for i, p := range parties {
		rows[i] = []any{i + 1, p.Party, p.Signed, p.NotSigned, p.Total, p.Ratio()}
	}
	return rows
}

// write builds the workbook and streams it to the output.
func (w *XLSXWriter) write(sheets []sheetData) (int, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			// A new workbook starts with a single default sheet.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return 0, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return 0, fmt.Errorf("failed to add sheet %s: %w", sheet.name, err)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return 0, err
		}
	}
	f.SetActiveSheet(0)

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}

func writeSheet(f *excelize.File, sheet sheetData, headerStyle int) error {
	if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet.name, err)
	}
	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.name, i+1, err)
		}
	}

	lastCol, err := excelize.CoordinatesToCellName(len(sheet.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.name, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet.name, err)
	}

	lastCell, err := excelize.CoordinatesToCellName(len(sheet.header), len(sheet.rows)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet.name, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("failed to add %s autofilter: %w", sheet.name, err)
	}
	return nil
}
