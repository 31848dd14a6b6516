package key

import (
	"errors"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEscape, "Escape"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Esc", KeyEscape},
		{"return", KeyEnter},
		{"PgDn", KeyPageDown},
		{"f1", KeyF1},
		{"F10", KeyF10},
		{"f13", KeyNone},
		{"bogus", KeyNone},
	}
	for _, tt := range tests {
		if got := FromName(tt.name); got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMod(t *testing.T) {
	m := ModCtrl.With(ModShift)
	if !m.Has(ModCtrl) || !m.Has(ModShift) || m.Has(ModAlt) {
		t.Errorf("unexpected modifier set %v", m)
	}
	if got := m.String(); got != "Ctrl+Shift" {
		t.Errorf("String() = %q", got)
	}
	if ModFromName("cmd") != ModMeta || ModFromName("nope") != ModNone {
		t.Error("ModFromName mismatch")
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"ctrl+s", Chord{Key: KeyRune, Rune: 's', Mods: ModCtrl}},
		{"Ctrl+Shift+P", Chord{Key: KeyRune, Rune: 'p', Mods: ModCtrl | ModShift}},
		{"ctrl+P", Chord{Key: KeyRune, Rune: 'p', Mods: ModCtrl | ModShift}},
		{"alt+f4", Chord{Key: KeyF4, Mods: ModAlt}},
		{"esc", Chord{Key: KeyEscape}},
		{"ctrl+space", Chord{Key: KeyRune, Rune: ' ', Mods: ModCtrl}},
		{"ctrl++", Chord{Key: KeyRune, Rune: '+', Mods: ModCtrl}},
		{"q", Chord{Key: KeyRune, Rune: 'q'}},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.spec)
		if err != nil {
			t.Errorf("ParseChord(%q) error: %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseChord_Errors(t *testing.T) {
	if _, err := ParseChord(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	for _, spec := range []string{"hyper+s", "ctrl+nope"} {
		if _, err := ParseChord(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("ParseChord(%q): expected ErrInvalidSpec, got %v", spec, err)
		}
	}
}

func TestChord_String(t *testing.T) {
	c, _ := ParseChord("ctrl+shift+p")
	if got := c.String(); got != "Ctrl+Shift+p" {
		t.Errorf("String() = %q", got)
	}
	if got := NewChord(KeySpace, 0, ModNone).String(); got != "Space" {
		t.Errorf("space chord String() = %q", got)
	}
}

func TestNewChord_Normalizes(t *testing.T) {
	a := NewChord(KeyRune, 'S', ModCtrl)
	b := NewChord(KeyRune, 's', ModCtrl|ModShift)
	if a != b {
		t.Errorf("expected %+v == %+v", a, b)
	}
	if c := NewChord(KeyEnter, 'x', ModNone); c.Rune != 0 {
		t.Error("special keys should drop the rune")
	}
}
