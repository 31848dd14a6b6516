package ui

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color. A zero alpha means "no fill".
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Common colors.
var (
	ColorNone  = Color{}
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)

	// DefaultBackground is the fill given to freshly created nodes.
	DefaultBackground = RGB(30, 30, 36)
	// DefaultText is the text color given to freshly created nodes.
	DefaultText = RGB(220, 220, 220)
)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" into a Color.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := uint8(255)

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		var a uint8
		if _, err := fmt.Sscanf(hex[6:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid color alpha %q: %w", s, err)
		}
		alpha = a
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("invalid color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsNone reports whether the color is fully transparent.
func (c Color) IsNone() bool {
	return c.A == 0
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten raises the HSL lightness by amount (0..1), keeping alpha.
// Transparent colors are returned unchanged.
func (c Color) Lighten(amount float64) Color {
	if c.IsNone() || amount == 0 {
		return c
	}
	h, s, l := c.colorful().Hsl()
	l += amount
	if l > 1 {
		l = 1
	}
	if l < 0 {
		l = 0
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
