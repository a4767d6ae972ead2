// Package config loads wayfare's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wayfare/config.toml
//  3. If the file doesn't exist, use the defaults
//  4. Blank or missing fields keep their defaults
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8080"
//	display_time_zone = "UTC"
//	page_size = 15
//	max_results = 15
//	lookup_debounce_ms = 400
//	lookup_rate_per_second = 5
//	lookup_burst = 5
//	lookup_cache_ttl_seconds = 300
//	log_file = "~/.local/state/wayfare/wayfare.log"
//	log_level = "info"
//
// Every field is optional. String values are trimmed and paths get tilde
// expansion. display_time_zone must be an IANA zone name; the zone database
// is embedded so this works on hosts without tzdata. Timestamps carrying an
// explicit offset are shown in that zone; wall-clock timestamps never move.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Values out of range, such as page_size = 0 or an unknown zone
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	client, err := flights.NewClient(cfg.APIURL)
package config
