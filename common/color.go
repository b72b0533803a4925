package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 32-bit RGBA color packed as 0xRRGGBBAA with the red channel in
// the most significant byte. This matches the byte order expected by the
// instance vertex attributes, so a Color value can be written to an instance
// buffer without conversion.
type Color uint32

// Commonly used colors.
const (
	ColorBlack       Color = 0x000000FF
	ColorRed         Color = 0xFF0000FF
	ColorYellow      Color = 0xFFFF00FF
	ColorGreen       Color = 0x00FF00FF
	ColorBlue        Color = 0x0000FFFF
	ColorWhite       Color = 0xFFFFFFFF
	ColorTransparent Color = 0x00000000
)

// ColorFromRGB creates a fully opaque Color from a 24-bit 0xRRGGBB value.
//
// Parameters:
//   - rgb: the packed 24-bit color, e.g. 0xFF8800
//
// Returns:
//   - Color: the packed RGBA color with alpha set to 0xFF
func ColorFromRGB(rgb uint32) Color {
	return Color(rgb<<8 | 0xFF)
}

// ColorFromRGBA creates a Color from individual 8-bit channel values.
//
// Parameters:
//   - r: red channel
//   - g: green channel
//   - b: blue channel
//   - a: alpha channel
//
// Returns:
//   - Color: the packed RGBA color
func ColorFromRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// ColorSplatRGB creates a fully opaque grayscale Color with all three color
// channels set to v.
//
// Parameters:
//   - v: the channel value applied to red, green and blue
//
// Returns:
//   - Color: the packed grayscale color
func ColorSplatRGB(v uint8) Color {
	return ColorFromRGBA(v, v, v, 0xFF)
}

// RGBA unpacks the color into its four 8-bit channels.
//
// Returns:
//   - r: red channel
//   - g: green channel
//   - b: blue channel
//   - a: alpha channel
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NRGBA unpacks the color into normalized float32 channels in [0, 1],
// each 8-bit channel divided by 255.
//
// Returns:
//   - [4]float32: the normalized red, green, blue and alpha channels
func (c Color) NRGBA() [4]float32 {
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 255.0,
		float32(g) / 255.0,
		float32(b) / 255.0,
		float32(a) / 255.0,
	}
}

// WithAlpha returns a copy of the color with the alpha channel replaced.
//
// Parameters:
//   - a: the new alpha channel value
//
// Returns:
//   - Color: the color with its alpha channel set to a
func (c Color) WithAlpha(a uint8) Color {
	return (c &^ 0xFF) | Color(a)
}

// String formats the color as a "#rrggbbaa" hex string.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor parses a CSS-style hex color string. Supported forms are
// "#rgb", "#rgba", "#rrggbb" and "#rrggbbaa"; short forms expand each
// digit to a byte (e.g. "#f80" becomes "#ff8800ff"). Forms without an
// alpha component default to fully opaque.
//
// Parameters:
//   - s: the hex color string, leading '#' required
//
// Returns:
//   - Color: the parsed color
//   - error: an error if the string is not a recognized hex color form
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("color %q: missing leading '#'", s)
	}

	switch len(hex) {
	case 3:
		hex = expandShortHex(hex) + "ff"
	case 4:
		hex = expandShortHex(hex)
	case 6:
		hex += "ff"
	case 8:
		// already full form
	default:
		return 0, fmt.Errorf("color %q: expected 3, 4, 6 or 8 hex digits, got %d", s, len(hex))
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(v), nil
}

// expandShortHex doubles each character of a short hex form, so "f80"
// becomes "ff8800".
func expandShortHex(hex string) string {
	var b strings.Builder
	b.Grow(len(hex) * 2)
	for _, c := range hex {
		b.WriteRune(c)
		b.WriteRune(c)
	}
	return b.String()
}
