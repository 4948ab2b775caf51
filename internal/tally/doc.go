// Package tally aggregates signature flags per party.
//
// Aggregate groups the rows of a table by the party cell and counts signed
// and not-signed members. Groups keep first-seen order, so two runs over the
// same table produce identical output. Ranked orders the groups for display
// by signed ratio, highest first, with ties broken by party name under a
// locale collator.
//
// A cell counts as signed only when it is the boolean true or the literal
// string "true". Party names are trimmed of surrounding space and missing
// party cells group under "". Missing signed cells
// count as not signed.
package tally
