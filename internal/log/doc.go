// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// signboard only performs anonymous requests, but sheet URLs and errors may
// still be copied from browser sessions or proxies that carry credentials.
// The SecureHandler masks:
//   - HTTP headers (Authorization, Cookie, X-Goog-Api-Key)
//   - Google API keys, OAuth access tokens, JWTs, Bearer and Basic credentials
//   - credential query parameters (key, access_token, token) inside URLs,
//     including URLs quoted in error messages
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("fetched sheet", "url", sheetURL)
//	slog.SetDefault(logger)
package log
