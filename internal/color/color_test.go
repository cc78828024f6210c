package color

import (
	"errors"
	"math"
	"testing"
)

func TestHexToRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want [4]float32
	}{
		{"#000000", [4]float32{0, 0, 0, 1}},
		{"#fff", [4]float32{255, 255, 255, 1}},
		{"#FFF", [4]float32{255, 255, 255, 1}},
		{"#1c1228", [4]float32{28, 18, 40, 1}},
		{"#abc", [4]float32{0xaa, 0xbb, 0xcc, 1}},
	}

	for _, tt := range tests {
		got, err := HexToRGBA(tt.in)
		if err != nil {
			t.Errorf("HexToRGBA(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("HexToRGBA(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHexToRGBAInvalid(t *testing.T) {
	for _, in := range []string{"not-a-color", "", "#", "fff", "#ffff", "#12345g", "#1234567", " #fff"} {
		if _, err := HexToRGBA(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("HexToRGBA(%q): expected ErrInvalidHex, got %v", in, err)
		}
	}
}

func TestFromHex(t *testing.T) {
	c, err := FromHex("#1c1228")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}

	want := Color{28.0 / 255, 18.0 / 255, 40.0 / 255, 1}
	if !near(c.R, want.R) || !near(c.G, want.G) || !near(c.B, want.B) || c.A != 1 {
		t.Errorf("FromHex = %+v, want %+v", c, want)
	}
	if got := c.Hex(); got != "#1c1228" {
		t.Errorf("Hex() = %s, want #1c1228", got)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}
