// Package config loads, validates and watches the editor configuration.
//
// A configuration file is TOML or YAML, chosen by extension. Every key is
// optional: a missing file, section or field keeps its default.
//
//	[render]
//	delay_ms = 16        # batching delay for requested renders
//	animate_ms = 500     # free-running window after scroll or drag
//	idle_poll_ms = 100   # longest wait when nothing is scheduled
//	frame_ms = 16        # wait between frames while animating
//
//	[events]
//	arena_bytes = 65536  # per-frame event arena
//
//	[log]
//	level = "info"
//	file = ""
//
//	[theme]
//	background = "#1e1e1e"
//	hover_lighten = 0.08
//
//	[[shortcuts]]
//	keys = "ctrl+shift+p"
//	signal = "palette.open"
//
//	[[plugins]]
//	path = "plugins/status.lua"
//	priority = 10
//
// Watcher reports changes to the file so the main loop can apply them
// without restarting.
package config
