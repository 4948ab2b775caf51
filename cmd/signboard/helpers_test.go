package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func gviz(table string) string {
	return `/*O_o*/` + "\n" + `google.visualization.Query.setResponse({"version":"0.6","status":"ok","table":` + table + `});`
}

func memberRow(name, party, state string, signed bool) string {
	return fmt.Sprintf(`{"c":[{"v":%q},{"v":%q},{"v":%q},{"v":%t},{"v":"https://x.com/%s"},null,{"v":"%s@example.org"},{"v":""}]}`,
		name, party, state, signed, strings.ToLower(name), strings.ToLower(name))
}

const memberColumns = `[{"id":"A","label":"Nome","type":"string"},{"id":"B","label":"Partido","type":"string"},{"id":"C","label":"Estado","type":"string"},{"id":"D","label":"Assinou","type":"boolean"},{"id":"E","label":"Twitter","type":"string"},{"id":"F","label":"Instagram","type":"string"},{"id":"G","label":"Email","type":"string"},{"id":"H","label":"Foto","type":"string"}]`

// petitionBody has parties A {2 of 3 signed}, B {0 of 1} and C {1 of 1}.
func petitionBody() string {
	rows := []string{
		memberRow("Eva", "C", "SP", true),
		memberRow("Bia", "A", "RJ", true),
		memberRow("Caio", "A", "MG", false),
		memberRow("Davi", "B", "BA", false),
		memberRow("Ana", "A", "SP", true),
	}
	return gviz(`{"cols":` + memberColumns + `,"rows":[` + strings.Join(rows, ",") + `]}`)
}

// newSheetServer serves gviz responses keyed by spreadsheet id:
// "good" is the petition, "empty" has no body, "broken" is malformed and
// "down" fails with 500.
func newSheetServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/spreadsheets/d/good/"):
			_, _ = w.Write([]byte(petitionBody()))
		case strings.HasPrefix(r.URL.Path, "/spreadsheets/d/empty/"):
		case strings.HasPrefix(r.URL.Path, "/spreadsheets/d/broken/"):
			_, _ = w.Write([]byte(`google.visualization.Query.setResponse({"table": );`))
		default:
			http.Error(w, "unavailable", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

const testConfig = `locale: pt-BR
timeout: 5s
sources:
  default:
    sheetId: good
  empty:
    sheetId: empty
  broken:
    sheetId: broken
  down:
    sheetId: down
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".signboard")
	if err := os.WriteFile(path, []byte(testConfig), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runCLI runs the root command against a fake sheet server with a test
// config file and returns stdout, stderr and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	srv := newSheetServer(t)
	cfg := writeTestConfig(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--base-url", srv.URL, "--config", cfg))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
