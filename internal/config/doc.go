// Package config loads the notesnav configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/notesnav/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	content = "~/notes/site"          # directory, http(s) URL or "sample"
//	default_hash = "current-affairs"
//
//	[store]
//	backend = "sqlite"                # file, sqlite, memory; inferred from path when empty
//	path = "~/.local/share/notesnav/store.db"
//
//	[ui]
//	transition_ms = 300
//	highlight_ms = 2000
//	notification_ms = 3000
//	watch = true
//
//	[search]
//	min_query = 2
//	max_results = 10
//
//	[print]
//	command = "lp"
//	args = ["-d", "office"]
//
//	[log]
//	path = "~/.local/state/notesnav/notesnav.log"
//	level = "info"
//
// Paths beginning with ~ are expanded and made absolute.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// invalid TOML. A missing file is not an error.
package config
