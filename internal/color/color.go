// Package color parses hex colour strings into clear colours.
package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidHex is returned for strings that are not #rgb or #rrggbb.
var ErrInvalidHex = errors.New("invalid hex color")

var hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// HexToRGBA parses "#rgb" or "#rrggbb" into [r, g, b, a] with 0-255 channels and alpha fixed at 1.
func HexToRGBA(hex string) ([4]float32, error) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return [4]float32{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	digits := m[1]
	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}

	var out [4]float32
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
		}
		out[i] = float32(v)
	}
	out[3] = 1
	return out, nil
}

// FromHex parses a hex string into a normalized Color.
func FromHex(hex string) (Color, error) {
	rgba, err := HexToRGBA(hex)
	if err != nil {
		return Color{}, err
	}
	return RGB(uint8(rgba[0]), uint8(rgba[1]), uint8(rgba[2])), nil
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Hex formats the color back as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
