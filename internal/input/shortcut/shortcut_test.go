package shortcut

import (
	"testing"

	"github.com/dshills/loom/internal/input/key"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry(nil)

	if !r.RegisterSpec("ctrl+p", "palette.open") {
		t.Fatal("RegisterSpec failed")
	}

	sig, ok := r.Lookup(key.KeyRune, 'p', key.ModCtrl)
	if !ok || sig != "palette.open" {
		t.Errorf("Lookup = %q, %v", sig, ok)
	}
	if _, ok := r.Lookup(key.KeyRune, 'p', key.ModNone); ok {
		t.Error("unmodified p should not match")
	}
}

func TestRegistry_FirstRegistrantWins(t *testing.T) {
	r := NewRegistry(nil)
	chord := key.NewChord(key.KeyRune, 's', key.ModCtrl)

	if !r.Register(chord, "buffer.save") {
		t.Fatal("first Register failed")
	}
	if r.Register(chord, "other.save") {
		t.Error("duplicate chord should be rejected")
	}
	if sig, _ := r.LookupChord(chord); sig != "buffer.save" {
		t.Errorf("expected first signal to remain, got %q", sig)
	}
}

func TestRegistry_ShiftedLetterMatches(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterSpec("ctrl+shift+p", "commands")

	// Backends may report the shifted rune without the Shift bit.
	if sig, ok := r.Lookup(key.KeyRune, 'P', key.ModCtrl); !ok || sig != "commands" {
		t.Errorf("Lookup = %q, %v", sig, ok)
	}
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry(nil)
	if r.RegisterSpec("hyper+x", "x") {
		t.Error("invalid spec should be rejected")
	}
	if r.RegisterSpec("ctrl+x", "") {
		t.Error("empty signal should be rejected")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistry_UnregisterAndReset(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterSpec("ctrl+a", "a")
	r.RegisterSpec("ctrl+b", "b")

	c, _ := key.ParseChord("ctrl+a")
	if !r.Unregister(c) || r.Unregister(c) {
		t.Error("Unregister should succeed once")
	}

	bs := r.Bindings()
	if len(bs) != 1 || bs[0].Signal != "b" {
		t.Errorf("unexpected bindings %+v", bs)
	}

	r.Reset()
	if r.Len() != 0 {
		t.Error("Reset should clear bindings")
	}
}
