// Package lua runs plugins written in Lua.
//
// A script is compiled when it is loaded and executed when the registry
// initializes the plugin. The script may define any of the global
// functions init, update(dt), shutdown and on_event(ev); each one becomes
// the matching plugin callback.
//
// # Host API
//
// Two tables are installed before the script runs:
//
//	loom.emit(name [, data])      emit a signal, or a custom event with data
//	loom.request_render()         schedule a batched render
//	loom.request_render_now()     schedule an immediate render
//	loom.shortcut(keys, signal)   bind "ctrl+shift+p" style keys to a signal
//	loom.log(msg)                 write to the plugin log
//	loom.window_size()            viewport width, height
//	loom.bounds(id)               x, y, width, height of a laid-out node
//
//	ui.create(id|nil, kind, parent_id|nil)   create and attach a node
//	ui.set_text(id, text)
//	ui.set_hidden(id, hidden)
//	ui.set_color(id, "#rrggbb")              background color
//	ui.set_text_color(id, "#rrggbb")
//	ui.remove(id)                            release a node this plugin created
//	ui.on_click(id, fn)                      fn(id) runs when the node is clicked
//
// Events reach on_event as tables such as {type="signal", name="app.save"}.
// Returning true, or setting ev.handled = true, consumes the event.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed, and print goes to the plugin
// log. Every call into the script runs under a timeout.
package lua
