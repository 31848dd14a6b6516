package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
)

func TestTranslator_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Chord
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.NewChord(key.KeyRune, 'a', 0)},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'P', tcell.ModNone), key.NewChord(key.KeyRune, 'p', key.ModShift)},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), key.NewChord(key.KeyRune, 'q', key.ModCtrl)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.NewChord(key.KeyEnter, 0, 0)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.NewChord(key.KeyTab, 0, key.ModShift)},
		{"alt arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), key.NewChord(key.KeyLeft, 0, key.ModAlt)},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.NewChord(key.KeyF5, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Translator
			out := tr.Translate(tt.ev)
			if len(out) != 1 || out[0].Type != event.KeyDown {
				t.Fatalf("inputs = %+v", out)
			}
			if got := out[0].Payload.(event.Key).Chord(); got != tt.want {
				t.Errorf("chord = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTranslator_MouseTransitions(t *testing.T) {
	var tr Translator

	out := tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	if len(out) != 1 || out[0].Type != event.MouseDown {
		t.Fatalf("press = %+v", out)
	}
	if m := out[0].Payload.(event.Mouse); m.X != 3 || m.Y != 4 || m.Button != event.ButtonLeft {
		t.Errorf("press payload = %+v", m)
	}

	out = tr.Translate(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	if len(out) != 1 || out[0].Type != event.MouseMove || out[0].Payload.(event.Mouse).Button != event.ButtonLeft {
		t.Errorf("drag = %+v", out)
	}

	out = tr.Translate(tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	if len(out) != 1 || out[0].Type != event.MouseUp {
		t.Errorf("release = %+v", out)
	}

	out = tr.Translate(tcell.NewEventMouse(6, 4, tcell.ButtonNone, tcell.ModNone))
	if len(out) != 1 || out[0].Type != event.MouseMove || out[0].Payload.(event.Mouse).Button != event.ButtonNone {
		t.Errorf("hover = %+v", out)
	}

	out = tr.Translate(tcell.NewEventMouse(6, 4, tcell.Button2, tcell.ModShift))
	if len(out) != 1 || out[0].Payload.(event.Mouse).Button != event.ButtonRight || !out[0].Payload.(event.Mouse).Mods.Has(key.ModShift) {
		t.Errorf("right press = %+v", out)
	}
}

func TestTranslator_Wheel(t *testing.T) {
	var tr Translator
	out := tr.Translate(tcell.NewEventMouse(1, 2, tcell.WheelDown, tcell.ModNone))
	if len(out) != 1 || out[0].Type != event.Scroll {
		t.Fatalf("wheel = %+v", out)
	}
	if s := out[0].Payload.(event.ScrollPayload); s.DY != -1 || s.DX != 0 || s.X != 1 {
		t.Errorf("scroll = %+v", s)
	}
}

func TestTranslator_ResizeAndPaste(t *testing.T) {
	var tr Translator
	out := tr.Translate(tcell.NewEventResize(100, 40))
	if len(out) != 1 || out[0].Payload != (event.Resize{Width: 100, Height: 40}) {
		t.Errorf("resize = %+v", out)
	}

	if out := tr.Translate(tcell.NewEventPaste(true)); out != nil {
		t.Errorf("paste start = %+v", out)
	}
	for _, r := range "hi" {
		if out := tr.Translate(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); out != nil {
			t.Error("keys inside a paste are collected")
		}
	}
	tr.Translate(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	out = tr.Translate(tcell.NewEventPaste(false))
	if len(out) != 1 || out[0].Type != event.TextInput || out[0].Payload.(event.Text).Text != "hi\n" {
		t.Errorf("paste = %+v", out)
	}
}

func TestTranslator_Ignored(t *testing.T) {
	var tr Translator
	if out := tr.Translate(tcell.NewEventFocus(true)); out != nil {
		t.Errorf("focus = %+v", out)
	}
}
