// Package config loads albumfeed's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/albumfeed/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// After Load, ApplyEnv layers ALBUMFEED_* environment variables on top.
// LoadEnvFile can seed those variables from a dotenv file first; variables
// already set in the process environment win.
//
// # TOML Format
//
//	feed_url = "https://itunes.apple.com/us/rss/topalbums"
//	country = "us"
//	request_timeout_seconds = 10
//	requests_per_second = 2
//	log_level = "info"
//	log_format = "text"
//	log_file = "~/.local/share/albumfeed/albumfeed.log"
//	listen_addr = "127.0.0.1:8080"
//	user_agent = "albumfeed/0.1"
//
// Every field is optional. When feed_url is unset the feed for country is
// used (see ResolvedFeedURL). Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error.
package config
