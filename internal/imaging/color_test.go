package imaging

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex  string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"00FF00", color.NRGBA{0, 255, 0, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{" #0000FF ", color.NRGBA{0, 0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ParseColor(tt.hex)
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q): got %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, hex := range []string{"", "#", "#GGGGGG", "white", "#12"} {
		t.Run(hex, func(t *testing.T) {
			if _, err := ParseColor(hex); err == nil {
				t.Errorf("ParseColor(%q) should fail", hex)
			}
		})
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(color.White); got != "#FFFFFF" {
		t.Errorf("HexColor(white): got %s, want #FFFFFF", got)
	}
	if got := HexColor(color.NRGBA{0x12, 0xAB, 0x0F, 255}); got != "#12AB0F" {
		t.Errorf("HexColor: got %s, want #12AB0F", got)
	}
}
