package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is stamped into summary documents.
	version string

	// now returns the generation time of summary documents.
	now func() time.Time
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion sets the version recorded in summary documents.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// SummaryDocument wraps source summaries with generation metadata.
type SummaryDocument struct {
	// Version is the signboard version that generated this document.
	Version string `json:"version,omitempty"`

	// GeneratedAt is when the document was written.
	GeneratedAt time.Time `json:"generated_at"`

	// Sources holds one summary per loaded source, in request order.
	Sources []SourceSummary `json:"sources"`
}

// WriteSummary outputs a SummaryDocument.
func (w *JSONWriter) WriteSummary(summaries []SourceSummary) (int, error) {
	if summaries == nil {
		summaries = []SourceSummary{}
	}
	return w.writeJSON(SummaryDocument{
		Version:     w.version,
		GeneratedAt: w.now().UTC(),
		Sources:     summaries,
	})
}

// WriteMembers outputs the members view.
func (w *JSONWriter) WriteMembers(view *MembersView) (int, error) {
	if view == nil {
		return 0, ErrNilSnapshot
	}
	return w.writeJSON(view)
}

// WriteMember outputs the member detail view.
func (w *JSONWriter) WriteMember(detail *MemberDetail) (int, error) {
	if detail == nil {
		return 0, ErrNilSnapshot
	}
	return w.writeJSON(detail)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
