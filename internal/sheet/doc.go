// Package sheet parses Google Sheets query responses into tables.
//
// The gviz query endpoint answers with a JavaScript statement rather than
// plain JSON:
//
//	/*O_o*/
//	google.visualization.Query.setResponse({"version":"0.6","status":"ok","table":{...}});
//
// Parse extracts the JSON between the first "(" and the last ");", decodes
// the envelope and returns its table. The outcome is explicit:
//
//   - Success: the envelope carried a table.
//   - NoData: the payload was empty, had no embedded JSON or no table.
//     The result holds an empty table.
//   - ParseError: the embedded JSON was malformed or the query reported an
//     error status.
//
// Parse never panics and never returns a nil table.
package sheet
