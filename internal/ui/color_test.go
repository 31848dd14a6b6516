package ui

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", RGB(255, 0, 0), false},
		{"00ff00", RGB(0, 255, 0), false},
		{"#fff", RGB(255, 255, 255), false},
		{"#10203080", Color{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, false},
		{"#12345", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColor_Lighten(t *testing.T) {
	base := RGB(40, 40, 40)
	light := base.Lighten(0.2)

	if light.R <= base.R || light.G <= base.G || light.B <= base.B {
		t.Errorf("expected lighter color, got %+v from %+v", light, base)
	}
	if light.A != base.A {
		t.Error("Lighten must keep alpha")
	}
	if ColorNone.Lighten(0.5) != ColorNone {
		t.Error("transparent colors should not change")
	}
	if got := ColorWhite.Lighten(0.5); got != ColorWhite {
		t.Errorf("white should saturate at white, got %+v", got)
	}
}

func TestColor_Hex(t *testing.T) {
	if got := RGB(1, 2, 255).Hex(); got != "#0102ff" {
		t.Errorf("Hex() = %q", got)
	}
}
