package event

import "github.com/dshills/loom/internal/input/key"

// Payload is the closed set of data an event can carry. Handlers match on
// the concrete variant with a type switch.
type Payload interface {
	isPayload()
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Mouse is carried by MouseDown, MouseUp and MouseMove.
type Mouse struct {
	X, Y   int
	Button MouseButton
	Mods   key.Mod
}

// ScrollPayload is carried by Scroll.
type ScrollPayload struct {
	X, Y   int
	DX, DY float64
}

// Key is carried by KeyDown.
type Key struct {
	Key  key.Key
	Rune rune
	Mods key.Mod
}

// Chord returns the normalized chord for the key press.
func (k Key) Chord() key.Chord {
	return key.NewChord(k.Key, k.Rune, k.Mods)
}

// Text is carried by TextInput.
type Text struct {
	Text string
}

// Resize is carried by WindowResize.
type Resize struct {
	Width, Height int
}

// Container is carried by ContainerClicked.
type Container struct {
	ID string
}

// File is carried by FileOpenRequest, FileSelected and DirectoryToggled.
type File struct {
	Path  string
	IsDir bool
	// Expanded reports the new state for DirectoryToggled.
	Expanded bool
}

// Tab is carried by TabChanged.
type Tab struct {
	ComponentID uint64
	OldIndex    int
	NewIndex    int
	ContentID   string
}

// SignalPayload is carried by Signal.
type SignalPayload struct {
	Name string
}

// Dialog is carried by FileDialogResult.
type Dialog struct {
	Paths    []string
	Canceled bool
	Err      string
}

// Config is carried by ConfigReloaded.
type Config struct {
	Path string
}

// Plugin is carried by PluginInitialized.
type Plugin struct {
	ID string
	OK bool
}

// CustomPayload is carried by Custom. Data is opaque to the kernel.
type CustomPayload struct {
	Name string
	Data any
}

func (Mouse) isPayload()         {}
func (ScrollPayload) isPayload() {}
func (Key) isPayload()           {}
func (Text) isPayload()          {}
func (Resize) isPayload()        {}
func (Container) isPayload()     {}
func (File) isPayload()          {}
func (Tab) isPayload()           {}
func (SignalPayload) isPayload() {}
func (Dialog) isPayload()        {}
func (Config) isPayload()        {}
func (Plugin) isPayload()        {}
func (CustomPayload) isPayload() {}
