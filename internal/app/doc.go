// Package app is the composition root of wayfare.
//
// # Overview
//
// boot loads config.toml and prefs.toml, builds the logger, the flights API
// client and the cached, rate-limited location lookup. The entry points then
// differ only in what they drive:
//
//   - Run starts the bubbletea interface and logs to the log file.
//   - RunSearch performs one search and prints a table (or a kr/pretty dump).
//   - RunLocations prints autocomplete matches for a keyword.
//   - RunLogs tails the interface's log file through zerolog's console writer.
//
// The non-interactive commands log to stderr.
//
// # Searches
//
// Searcher owns the lifecycle of a search against state.Store:
//
//	Run(req) ─> Validate ─> cancel previous ─> BeginSearch (gen N)
//	        ─> client.SearchOffers ─> CompleteSearch(gen N)
//
// A request that fails validation never reaches the store, so the previous
// results stay on screen. Starting a search cancels the one in flight, and a
// response whose generation is older than the store's is discarded; Run then
// returns ErrSuperseded.
//
// # Errors
//
// boot failures (bad config, unusable log file, bad API URL) are fatal and
// returned. Search failures are recorded in the store and returned to the
// caller, which decides whether to print or display them.
package app
