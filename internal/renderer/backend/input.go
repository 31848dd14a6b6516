package backend

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
)

// namedKeys maps tcell's special keys to platform-neutral keys.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button event.MouseButton
}{
	{tcell.Button1, event.ButtonLeft},
	{tcell.Button3, event.ButtonMiddle},
	{tcell.Button2, event.ButtonRight},
}

const (
	buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3
	wheelMask  = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
)

// Translator turns tcell events into typed inputs. Terminals report mouse
// state rather than transitions, so the translator remembers which buttons
// were held to synthesize down and up events. It also collects bracketed
// paste into a single text input.
type Translator struct {
	buttons tcell.ButtonMask
	pasting bool
	paste   strings.Builder
}

// Translate converts one tcell event.
func (t *Translator) Translate(ev tcell.Event) []Input {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return []Input{{Type: event.WindowResize, Payload: event.Resize{Width: w, Height: h}}}
	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return nil
		}
		t.pasting = false
		if t.paste.Len() == 0 {
			return nil
		}
		return []Input{{Type: event.TextInput, Payload: event.Text{Text: t.paste.String()}}}
	default:
		return nil
	}
}

func (t *Translator) translateKey(e *tcell.EventKey) []Input {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if t.pasting {
		switch k {
		case tcell.KeyRune:
			t.paste.WriteRune(e.Rune())
		case tcell.KeyEnter:
			t.paste.WriteByte('\n')
		case tcell.KeyTab:
			t.paste.WriteByte('\t')
		}
		return nil
	}

	p := event.Key{Mods: mods}
	switch {
	case k == tcell.KeyRune:
		p.Key, p.Rune = key.KeyRune, e.Rune()
	case k == tcell.KeyBacktab:
		p.Key, p.Mods = key.KeyTab, mods.With(key.ModShift)
	case k == tcell.KeyCtrlSpace:
		p.Key, p.Mods = key.KeySpace, mods.With(key.ModCtrl)
	default:
		if named, ok := namedKeys[k]; ok {
			p.Key = named
			break
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			p.Key = key.KeyRune
			p.Rune = 'a' + rune(k-tcell.KeyCtrlA)
			p.Mods = mods.With(key.ModCtrl)
			break
		}
		return nil
	}
	return []Input{{Type: event.KeyDown, Payload: p}}
}

func (t *Translator) translateMouse(e *tcell.EventMouse) []Input {
	x, y := e.Position()
	mods := convertMod(e.Modifiers())
	btns := e.Buttons()

	var out []Input
	if wheel := btns & wheelMask; wheel != 0 {
		var dx, dy float64
		if wheel&tcell.WheelUp != 0 {
			dy++
		}
		if wheel&tcell.WheelDown != 0 {
			dy--
		}
		if wheel&tcell.WheelLeft != 0 {
			dx--
		}
		if wheel&tcell.WheelRight != 0 {
			dx++
		}
		out = append(out, Input{Type: event.Scroll, Payload: event.ScrollPayload{X: x, Y: y, DX: dx, DY: dy}})
	}

	held := btns & buttonMask
	pressed := held &^ t.buttons
	released := t.buttons &^ held
	t.buttons = held

	for _, mb := range mouseButtons {
		if released&mb.mask != 0 {
			out = append(out, Input{Type: event.MouseUp, Payload: event.Mouse{X: x, Y: y, Button: mb.button, Mods: mods}})
		}
	}
	for _, mb := range mouseButtons {
		if pressed&mb.mask != 0 {
			out = append(out, Input{Type: event.MouseDown, Payload: event.Mouse{X: x, Y: y, Button: mb.button, Mods: mods}})
		}
	}
	if len(out) == 0 {
		out = append(out, Input{Type: event.MouseMove, Payload: event.Mouse{X: x, Y: y, Button: primary(held), Mods: mods}})
	}
	return out
}

// primary returns the first held button, for drag moves.
func primary(held tcell.ButtonMask) event.MouseButton {
	for _, mb := range mouseButtons {
		if held&mb.mask != 0 {
			return mb.button
		}
	}
	return event.ButtonNone
}

func convertMod(m tcell.ModMask) key.Mod {
	var result key.Mod
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
