package event

// Type identifies the kind of an event.
type Type uint8

const (
	TypeNone Type = iota

	// Platform input.
	MouseDown
	MouseUp
	MouseMove
	Scroll
	KeyDown
	TextInput
	WindowResize

	// Structural events emitted by plugins and components.
	ContainerClicked
	FileOpenRequest
	FileSelected
	DirectoryToggled
	TabChanged

	// Signal is emitted for a matched keyboard shortcut or by name.
	Signal

	// Kernel events.
	FileDialogResult
	ConfigReloaded
	PluginInitialized

	// Custom is the escape hatch for plugin-defined traffic.
	Custom

	typeCount
)

var typeNames = [...]string{
	TypeNone:          "none",
	MouseDown:         "mouse_down",
	MouseUp:           "mouse_up",
	MouseMove:         "mouse_move",
	Scroll:            "scroll",
	KeyDown:           "key_down",
	TextInput:         "text_input",
	WindowResize:      "window_resize",
	ContainerClicked:  "container_clicked",
	FileOpenRequest:   "file_open_request",
	FileSelected:      "file_selected",
	DirectoryToggled:  "directory_toggled",
	TabChanged:        "tab_changed",
	Signal:            "signal",
	FileDialogResult:  "file_dialog_result",
	ConfigReloaded:    "config_reloaded",
	PluginInitialized: "plugin_initialized",
	Custom:            "custom",
}

// String returns the snake_case name of the type.
func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known, non-zero type.
func (t Type) Valid() bool {
	return t > TypeNone && t < typeCount
}

// ParseType returns the Type for a snake_case name.
func ParseType(name string) (Type, bool) {
	for i := Type(1); i < typeCount; i++ {
		if typeNames[i] == name {
			return i, true
		}
	}
	return TypeNone, false
}

// Types returns every valid type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount-1)
	for i := Type(1); i < typeCount; i++ {
		out = append(out, i)
	}
	return out
}

// Accepts reports whether p is the payload variant carried by t.
func (t Type) Accepts(p Payload) bool {
	switch p.(type) {
	case Mouse:
		return t == MouseDown || t == MouseUp || t == MouseMove
	case ScrollPayload:
		return t == Scroll
	case Key:
		return t == KeyDown
	case Text:
		return t == TextInput
	case Resize:
		return t == WindowResize
	case Container:
		return t == ContainerClicked
	case File:
		return t == FileOpenRequest || t == FileSelected || t == DirectoryToggled
	case Tab:
		return t == TabChanged
	case SignalPayload:
		return t == Signal
	case Dialog:
		return t == FileDialogResult
	case Config:
		return t == ConfigReloaded
	case Plugin:
		return t == PluginInitialized
	case CustomPayload:
		return t == Custom
	default:
		return false
	}
}

// mask is a set of types, used for subscription filters.
type mask uint32

func maskOf(types []Type) mask {
	var m mask
	for _, t := range types {
		if t.Valid() {
			m |= 1 << t
		}
	}
	return m
}

func (m mask) has(t Type) bool {
	return m == 0 || m&(1<<t) != 0
}
