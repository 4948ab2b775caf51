// Package model defines the core data structures used throughout signboard.
//
// This package contains the following main types:
//   - Table: the normalized column/row structure parsed from a sheet response
//   - Member: a named-field record built from one Table row
//   - PartyAggregate: per-party signed/not-signed/total counts
//   - Snapshot: the result of one load cycle for a sheet source
//
// Models live in their own package so that sheet, tally, pipeline and report
// can share them without import cycles. All of them serialize to JSON for
// report output.
package model
