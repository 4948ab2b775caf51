// Package gsheet fetches public Google Sheets through the gviz query endpoint.
//
// A Client issues exactly one anonymous GET per Fetch. No credentials, cookies
// or retries are involved. The request can optionally be routed through a
// SOCKS5 proxy.
//
// # Usage
//
//	client, err := gsheet.NewClient(gsheet.WithTimeout(10 * time.Second))
//	if err != nil {
//		return err
//	}
//	body, err := client.Fetch(ctx, gsheet.DefaultSource())
//
// The body is returned as received. Use package sheet to parse it.
package gsheet
