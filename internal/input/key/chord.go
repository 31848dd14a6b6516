package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is a single key press together with its modifiers.
// Chords are comparable and used directly as map keys.
type Chord struct {
	Key  Key
	Rune rune
	Mods Mod
}

// NewChord builds a normalized chord from a translated key press.
func NewChord(k Key, r rune, mods Mod) Chord {
	return Chord{Key: k, Rune: r, Mods: mods}.Normalize()
}

// Normalize folds equivalent spellings of the same press together: Space is
// stored as the ' ' rune, and letters are lowercased with Shift made explicit.
func (c Chord) Normalize() Chord {
	if c.Key == KeySpace {
		c.Key = KeyRune
		c.Rune = ' '
	}
	if c.Key != KeyRune {
		c.Rune = 0
		return c
	}
	if unicode.IsUpper(c.Rune) {
		c.Rune = unicode.ToLower(c.Rune)
		c.Mods = c.Mods.With(ModShift)
	}
	return c
}

// String formats the chord as "Ctrl+Shift+p".
func (c Chord) String() string {
	var name string
	switch {
	case c.Key == KeyRune && c.Rune == ' ':
		name = "Space"
	case c.Key == KeyRune:
		name = string(c.Rune)
	default:
		name = c.Key.String()
	}
	if mods := c.Mods.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// ParseChord parses specs such as "ctrl+s", "Ctrl+Shift+P", "alt+f4" or "esc".
// A trailing "+" names the plus key itself ("ctrl++").
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	keyPart := spec
	var mods Mod
	if idx := strings.LastIndex(spec[:len(spec)-1], "+"); idx >= 0 {
		keyPart = spec[idx+1:]
		for _, p := range strings.Split(spec[:idx], "+") {
			mod := ModFromName(p)
			if mod == ModNone {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
	}

	if k := FromName(keyPart); k != KeyNone {
		return NewChord(k, 0, mods), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewChord(KeyRune, r, mods), nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}
