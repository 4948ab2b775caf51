package sheet

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/signboard/internal/model"
)

const sampleResponse = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","reqId":"0","status":"ok","sig":"1","table":{"cols":[{"id":"A","label":"Nome","type":"string"},{"id":"B","label":"Partido","type":"string"},{"id":"C","label":"Estado","type":"string"},{"id":"D","label":"Assinou","type":"boolean"}],"rows":[{"c":[{"v":"Ana"},{"v":"PT"},{"v":"SP"},{"v":true}]},{"c":[{"v":"Bia"},{"v":"PSOL"},{"v":"RJ"},{"v":false}]},{"c":[{"v":"Caio"},null,{"v":"MG"},{"v":"true"}]}],"parsedNumHeaders":1}});`

// wrap builds a gviz payload around a table with the given row count.
func wrap(rows int) string {
	var b strings.Builder
	b.WriteString(`google.visualization.Query.setResponse({"status":"ok","table":{"cols":[{"id":"A","label":"x","type":"string"},{"id":"B","label":"y","type":"string"}],"rows":[`)
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"c":[{"v":"r%d"},{"v":"P"}]}`, i)
	}
	b.WriteString(`]}});`)
	return b.String()
}

// TestParse tests parsing of gviz responses.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("decodes sample response", func(t *testing.T) {
		t.Parallel()
		result := ParseString(sampleResponse)
		if result.Outcome != Success {
			t.Fatalf("got %v, expected success (err: %v)", result.Outcome, result.Err)
		}
		if result.Table.ColumnCount() != 4 {
			t.Errorf("got %d columns, expected 4", result.Table.ColumnCount())
		}
		if result.Table.RowCount() != 3 {
			t.Errorf("got %d rows, expected 3", result.Table.RowCount())
		}
		if !result.Table.Rows[2].Cell(1).IsNull() {
			t.Error("expected null party cell in third row")
		}
		if diff := cmp.Diff([]string{"Nome", "Partido", "Estado", "Assinou"}, result.Table.ColumnLabels()); diff != "" {
			t.Errorf("labels (-want +got):\n%s", diff)
		}
	})

	t.Run("row count matches payload", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, 1, 7, 100} {
			result := ParseString(wrap(n))
			if result.Outcome != Success {
				t.Fatalf("n=%d: got %v", n, result.Outcome)
			}
			if result.Table.RowCount() != n {
				t.Errorf("n=%d: got %d rows", n, result.Table.RowCount())
			}
			if result.Table.ColumnCount() != 2 {
				t.Errorf("n=%d: got %d columns, expected 2", n, result.Table.ColumnCount())
			}
		}
	})

	t.Run("multi line payload", func(t *testing.T) {
		t.Parallel()
		payload := "google.visualization.Query.setResponse({\n\"status\":\"ok\",\n\"table\":{\"cols\":[],\"rows\":[{\"c\":[{\"v\":\"a (b)\"}]}]}\n});\n"
		result := ParseString(payload)
		if result.Outcome != Success {
			t.Fatalf("got %v (err: %v)", result.Outcome, result.Err)
		}
		if got := result.Table.Rows[0].Cell(0).Text(); got != "a (b)" {
			t.Errorf("got %q, expected %q", got, "a (b)")
		}
	})

	t.Run("timeofday column keeps every row", func(t *testing.T) {
		t.Parallel()
		payload := `google.visualization.Query.setResponse({"status":"ok","table":{"cols":[{"id":"A","label":"Nome","type":"string"},{"id":"B","label":"Hora","type":"timeofday"}],"rows":[{"c":[{"v":"Ana"},{"v":[8,15,0,0],"f":"08:15:00"}]},{"c":[{"v":"Bia"},{"v":[17,0,30,0],"f":"17:00:30"}]}]}});`
		result := ParseString(payload)
		if result.Outcome != Success {
			t.Fatalf("got %v, expected success (err: %v)", result.Outcome, result.Err)
		}
		if result.Table.RowCount() != 2 {
			t.Fatalf("got %d rows, expected 2", result.Table.RowCount())
		}
		cell := result.Table.Rows[0].Cell(1)
		if !cell.IsNull() {
			t.Errorf("expected null timeofday cell, got %v", cell.Kind)
		}
		if cell.Formatted != "08:15:00" {
			t.Errorf("got %q, expected %q", cell.Formatted, "08:15:00")
		}
		if got := result.Table.Rows[1].Cell(0).Text(); got != "Bia" {
			t.Errorf("got %q, expected %q", got, "Bia")
		}
	})
}

// TestParseNoData tests inputs that carry nothing to parse.
func TestParseNoData(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		payload []byte
	}{
		{"nil payload", nil},
		{"empty payload", []byte{}},
		{"no wrapper", []byte(`{"table":{"cols":[],"rows":[]}}`)},
		{"html error page", []byte(`<html><body>Sign in</body></html>`)},
		{"missing closing", []byte(`setResponse({"status":"ok"}`)},
		{"no table field", []byte(`setResponse({"status":"ok"});`)},
		{"null table", []byte(`setResponse({"status":"ok","table":null});`)},
	}

	empty := model.NewEmptyTable()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := Parse(tc.payload)
			if result.Outcome != NoData {
				t.Fatalf("got %v, expected no_data", result.Outcome)
			}
			if result.Err != nil {
				t.Errorf("unexpected error: %v", result.Err)
			}
			if diff := cmp.Diff(empty, result.Table); diff != "" {
				t.Errorf("table (-want +got):\n%s", diff)
			}
		})
	}
}

// TestParseError tests malformed payloads and failed queries.
func TestParseError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		payload string
		target  error
	}{
		{"truncated json", `setResponse({"status":"ok","table":{"cols":[);`, ErrMalformedJSON},
		{"not json", `setResponse(hello world);`, ErrMalformedJSON},
		{"query error", `setResponse({"status":"error","errors":[{"reason":"access_denied","message":"Access denied","detailed_message":"Sheet is private"}]});`, ErrQueryFailed},
		{"query error without details", `setResponse({"status":"error"});`, ErrQueryFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := ParseString(tc.payload)
			if result.Outcome != ParseError {
				t.Fatalf("got %v, expected parse_error", result.Outcome)
			}
			if !errors.Is(result.Err, tc.target) {
				t.Errorf("expected %v, got %v", tc.target, result.Err)
			}
			if result.Table == nil || !result.Table.IsEmpty() {
				t.Error("expected empty table on parse error")
			}
		})
	}

	t.Run("query error carries detail", func(t *testing.T) {
		t.Parallel()
		result := ParseString(`setResponse({"status":"error","errors":[{"message":"Access denied","detailed_message":"Sheet is private"}]});`)
		if !strings.Contains(result.Err.Error(), "Sheet is private") {
			t.Errorf("expected detail in error, got %q", result.Err)
		}
	})
}

// TestParseIdempotentEmpty tests that empty inputs yield equal results.
func TestParseIdempotentEmpty(t *testing.T) {
	t.Parallel()

	a := Parse(nil)
	b := ParseString("no match here")
	if diff := cmp.Diff(a.Table, b.Table); diff != "" {
		t.Errorf("empty tables differ (-nil +nomatch):\n%s", diff)
	}
	if a.Outcome != b.Outcome {
		t.Errorf("outcomes differ: %v vs %v", a.Outcome, b.Outcome)
	}
}

// TestOutcome tests outcome names and status mapping.
func TestOutcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		outcome Outcome
		name    string
		status  model.LoadStatus
	}{
		{Success, "success", model.StatusOK},
		{NoData, "no_data", model.StatusNoData},
		{ParseError, "parse_error", model.StatusParseError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.outcome.String() != tc.name {
				t.Errorf("got %q, expected %q", tc.outcome.String(), tc.name)
			}
			if tc.outcome.Status() != tc.status {
				t.Errorf("got %v, expected %v", tc.outcome.Status(), tc.status)
			}
		})
	}
}
