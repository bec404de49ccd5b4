// Package config loads editor configuration.
//
// Settings are resolved in order: built-in defaults, then a TOML or YAML
// file, then AYG_* environment variables, then command-line flags applied
// with Set. The result is checked with Validate before use.
//
// Example config.toml:
//
//	[dictionary]
//	source = "https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt"
//	timeout = "30s"
//
//	[spell]
//	max_word_length = 9
//	relocate = "search"
//	drain_interval = "100ms"
//	highlight_color = "red"
//
//	[editor]
//	tab_width = 4
//	default_extension = ".txt"
//
//	[log]
//	level = "info"
package config
