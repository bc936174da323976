// Package config loads the tablegrid configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tablegrid/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// Invalid values (an unknown log level, a negative size or interval) also
// fall back to their defaults. Their keys are listed in Config.Defaulted so
// the caller can log them.
//
// # File Format
//
//	[grid]
//	data_font_size = 13
//	header_font_size = 13
//	rows_to_show = 25          # -1 shows every row
//	auto_link_table_links = true
//	headers_vertical = false
//	time_zone = "Europe/Oslo"
//
//	[log]
//	level = "info"             # debug, info, warn or error
//	dir = "~/.local/share/tablegrid/logs"
//
//	[kernel]
//	url = "http://127.0.0.1:8888"
//	reconnect_max = 30         # seconds
//	poll_seconds = 2           # model file watch interval
//
// The [grid] values are defaults: Grid.Apply only fills fields a model
// record leaves unset.
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute. The log file is <dir>/tablegrid.log.
//
// Command line flags and TABLEGRID_* environment variables override the
// file; that layering lives in cmd/tablegrid.
package config
