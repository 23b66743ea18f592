// Package config loads piecetable settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. PIECETABLE_* environment variables
//
// Example file (TOML):
//
//	[logging]
//	level = "debug"
//
//	[engine]
//	boundary = "graphemes"
//	readOnly = false
//
// The same settings in YAML:
//
//	logging:
//	  level: debug
//	engine:
//	  boundary: graphemes
//
// Environment variables:
//
//	PIECETABLE_LOG_LEVEL=warn
//	PIECETABLE_BOUNDARY=runes
//	PIECETABLE_READ_ONLY=true
//
// A missing config file is not an error; defaults apply.
package config
