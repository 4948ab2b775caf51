// Package report renders loaded petition snapshots.
//
// Three views exist: a per-source summary (totals and the ranked party
// table), a members listing and a single member's details. Each format
// implements Writer:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with mermaid pie charts
//   - XLSXWriter: a spreadsheet workbook
//
// Select turns a snapshot into a MembersView by applying party, state and
// signature filters, a locale-aware sort and client-side offset/limit.
package report
