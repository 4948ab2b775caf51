package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/signboard/internal/config"
	"github.com/nao1215/signboard/internal/model"
	"github.com/nao1215/signboard/internal/report"
)

// TestSummaryCommand tests the summary command end to end.
func TestSummaryCommand(t *testing.T) {
	t.Parallel()

	t.Run("prints totals and ranking", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "summary")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{"SOURCE: default", "Signatures:  3", "Abstentions: 2", "Total:       5"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("json keeps source order", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "summary", "default", "empty", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc report.SummaryDocument
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(doc.Sources) != 2 {
			t.Fatalf("expected 2 sources, got %d", len(doc.Sources))
		}
		if doc.Sources[0].Source != "default" || doc.Sources[1].Source != "empty" {
			t.Errorf("expected default then empty, got %q then %q", doc.Sources[0].Source, doc.Sources[1].Source)
		}
		if doc.Sources[1].Status != model.StatusNoData {
			t.Errorf("expected no_data, got %s", doc.Sources[1].Status)
		}

		var order []string
		for _, p := range doc.Sources[0].Parties {
			order = append(order, p.Party)
		}
		if diff := cmp.Diff([]string{"C", "A", "B"}, order); diff != "" {
			t.Errorf("party order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failed source exits with error after reporting", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "summary", "default", "down")
		if !errors.Is(err, ErrLoadFailed) {
			t.Fatalf("expected ErrLoadFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "transport_error") {
			t.Errorf("expected transport error in message, got %v", err)
		}
		if !strings.Contains(stdout, "Signatures:  3") {
			t.Error("expected the healthy source to be reported")
		}
	})

	t.Run("parse failure exits with error", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "summary", "broken")
		if !errors.Is(err, ErrLoadFailed) {
			t.Fatalf("expected ErrLoadFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "parse_error") {
			t.Errorf("expected parse error in message, got %v", err)
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "reports", "summary.md")
		_, stderr, err := runCLI(t, "summary", "--markdown", "-o", out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if got := strings.Count(string(content), "```mermaid"); got != 3 {
			t.Errorf("expected 3 pie charts, got %d", got)
		}
		if !strings.Contains(stderr, "Report written to") {
			t.Error("expected confirmation on stderr")
		}
	})

	t.Run("sheet id flag overrides the source", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "summary", "--sheet-id", "empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No data") {
			t.Errorf("expected no data status, got:\n%s", stdout)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "summary", "nope")
		if !errors.Is(err, config.ErrUnknownSource) {
			t.Errorf("expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "summary", "--json", "--markdown")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "summary", "--concurrency", "0")
		if !errors.Is(err, config.ErrInvalidConcurrency) {
			t.Errorf("expected ErrInvalidConcurrency, got %v", err)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&strings.Builder{})
		cmd.SetErr(&strings.Builder{})
		cmd.SetArgs([]string{"summary", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

		if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestMembersCommand tests the members command end to end.
func TestMembersCommand(t *testing.T) {
	t.Parallel()

	t.Run("filters by party and signature", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "members", "--party", "a", "--signed", "yes", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var view report.MembersView
		if err := json.Unmarshal([]byte(stdout), &view); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		var names []string
		for _, m := range view.Members {
			names = append(names, m.Name)
		}
		if diff := cmp.Diff([]string{"Bia", "Ana"}, names); diff != "" {
			t.Errorf("members mismatch (-want +got):\n%s", diff)
		}
		if view.Total != 5 || view.Matched != 2 {
			t.Errorf("expected total 5 matched 2, got %d %d", view.Total, view.Matched)
		}
	})

	t.Run("sorts and pages", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "members", "--sort", "name", "--desc", "--limit", "2", "--offset", "1", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var view report.MembersView
		if err := json.Unmarshal([]byte(stdout), &view); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		var positions []int
		for _, m := range view.Members {
			positions = append(positions, m.Position)
		}
		if diff := cmp.Diff([]int{4, 3}, positions); diff != "" {
			t.Errorf("positions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("text listing shows identity markers when verbose", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "members", "-v")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "id: Eva_C_SP") {
			t.Errorf("expected identity marker, got:\n%s", stdout)
		}
	})

	t.Run("exports xlsx", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "members.xlsx")
		if _, _, err := runCLI(t, "members", "--xlsx", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f, err := excelize.OpenFile(out)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer func() { _ = f.Close() }()

		if diff := cmp.Diff([]string{report.SheetMembers, report.SheetParties}, f.GetSheetList()); diff != "" {
			t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
		}
		rows, err := f.GetRows(report.SheetMembers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 6 {
			t.Errorf("expected header and 5 rows, got %d", len(rows))
		}
	})

	t.Run("no data is not an error", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "members", "empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No data") {
			t.Errorf("expected no data status, got:\n%s", stdout)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "members", "down")
		if !errors.Is(err, ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})

	t.Run("invalid signed filter", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "members", "--signed", "maybe")
		if !errors.Is(err, report.ErrInvalidSignedFilter) {
			t.Errorf("expected ErrInvalidSignedFilter, got %v", err)
		}
	})

	t.Run("invalid sort key", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "members", "--sort", "email")
		if !errors.Is(err, report.ErrInvalidSortKey) {
			t.Errorf("expected ErrInvalidSortKey, got %v", err)
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "members", "--limit=-1")
		if !errors.Is(err, report.ErrInvalidPagination) {
			t.Errorf("expected ErrInvalidPagination, got %v", err)
		}
	})

	t.Run("at most one source", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runCLI(t, "members", "default", "empty"); err == nil {
			t.Error("expected error for two sources")
		}
	})
}

// TestMemberCommand tests the member command end to end.
func TestMemberCommand(t *testing.T) {
	t.Parallel()

	t.Run("shows details", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "member", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Name:         Bia", "Party:        A", "Signed:       yes", "https://x.com/bia", "bia@example.org"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("json detail", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "member", "4", "default", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var detail report.MemberDetail
		if err := json.Unmarshal([]byte(stdout), &detail); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if detail.Member.ID != "Davi_B_BA" || detail.Member.Signed {
			t.Errorf("unexpected member: %+v", detail.Member)
		}
	})

	t.Run("position out of range", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "member", "9")
		if !errors.Is(err, ErrMemberNotFound) {
			t.Errorf("expected ErrMemberNotFound, got %v", err)
		}
	})

	t.Run("invalid position", func(t *testing.T) {
		t.Parallel()

		for _, arg := range []string{"0", "abc", "1.5"} {
			_, _, err := runCLI(t, "member", arg)
			if !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("%s: expected ErrInvalidPosition, got %v", arg, err)
			}
		}
	})

	t.Run("requires a position", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runCLI(t, "member"); err == nil {
			t.Error("expected error without a position")
		}
	})
}
