package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromRGB(t *testing.T) {
	assert.Equal(t, Color(0xFF8800FF), ColorFromRGB(0xFF8800))
	assert.Equal(t, ColorBlack, ColorFromRGB(0x000000))
	assert.Equal(t, ColorWhite, ColorFromRGB(0xFFFFFF))
}

func TestColorFromRGBA(t *testing.T) {
	assert.Equal(t, Color(0x11223344), ColorFromRGBA(0x11, 0x22, 0x33, 0x44))
	assert.Equal(t, ColorTransparent, ColorFromRGBA(0, 0, 0, 0))
}

func TestColorSplatRGB(t *testing.T) {
	assert.Equal(t, Color(0x7F7F7FFF), ColorSplatRGB(0x7F))
	assert.Equal(t, ColorWhite, ColorSplatRGB(0xFF))
}

func TestColorRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
	}{
		{name: "opaque mid channels", r: 0x12, g: 0x34, b: 0x56, a: 0xFF},
		{name: "translucent", r: 0xFF, g: 0x00, b: 0x80, a: 0x40},
		{name: "black transparent", r: 0, g: 0, b: 0, a: 0},
		{name: "white opaque", r: 0xFF, g: 0xFF, b: 0xFF, a: 0xFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ColorFromRGBA(tt.r, tt.g, tt.b, tt.a)
			r, g, b, a := c.RGBA()
			assert.Equal(t, tt.r, r)
			assert.Equal(t, tt.g, g)
			assert.Equal(t, tt.b, b)
			assert.Equal(t, tt.a, a)
		})
	}
}

func TestColorNRGBA(t *testing.T) {
	n := ColorWhite.NRGBA()
	assert.Equal(t, [4]float32{1, 1, 1, 1}, n)

	n = ColorTransparent.NRGBA()
	assert.Equal(t, [4]float32{0, 0, 0, 0}, n)
}

func TestColorWithAlpha(t *testing.T) {
	assert.Equal(t, Color(0xFF000080), ColorRed.WithAlpha(0x80))
	assert.Equal(t, ColorRed, ColorRed.WithAlpha(0x80).WithAlpha(0xFF))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{name: "full rgba", in: "#11223344", want: 0x11223344},
		{name: "full rgb implies opaque", in: "#112233", want: 0x112233FF},
		{name: "short rgb", in: "#f80", want: 0xFF8800FF},
		{name: "short rgba", in: "#f808", want: 0xFF880088},
		{name: "uppercase", in: "#FF0000", want: ColorRed},
		{name: "missing hash", in: "ff0000", wantErr: true},
		{name: "bad length", in: "#ff000", wantErr: true},
		{name: "bad digits", in: "#zzxxyy", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#ff0000ff", ColorRed.String())

	// String output parses back to the same color.
	c := ColorFromRGBA(0xAB, 0xCD, 0xEF, 0x12)
	got, err := ParseColor(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
