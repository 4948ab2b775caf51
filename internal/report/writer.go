package report

import (
	"io"
)

// Writer defines the interface for report output.
// Each implementation renders the same views in its own format.
type Writer interface {
	// WriteSummary outputs totals and the ranked party table of each source.
	// Returns the number of bytes written and any error encountered.
	WriteSummary(summaries []SourceSummary) (int, error)

	// WriteMembers outputs a members listing.
	WriteMembers(view *MembersView) (int, error)

	// WriteMember outputs the details of one member.
	WriteMember(detail *MemberDetail) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteSummary outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteSummary(summaries []SourceSummary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteSummary(summaries) })
}

// WriteMembers outputs the members listing to all configured Writers.
func (m *MultiWriter) WriteMembers(view *MembersView) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteMembers(view) })
}

// WriteMember outputs the member detail to all configured Writers.
func (m *MultiWriter) WriteMember(detail *MemberDetail) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteMember(detail) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
