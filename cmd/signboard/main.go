// Package main provides the entry point for the signboard CLI.
//
// signboard loads petition signature data from a public Google Sheets
// document and reports how many legislators of each party signed.
//
// Usage:
//
//	signboard summary [source...]
//	signboard members [source]
//	signboard member <position> [source]
//
// See --help for all available options.
package main

// main is the entry point for signboard.
func main() {
	Execute()
}
