// Package config loads runtime settings for the EdgeBet terminal client.
// Sources are layered: built-in defaults, then an optional JSON file
// (-c/-config), then the environment, then command-line flags, with later
// sources winning.
package config
