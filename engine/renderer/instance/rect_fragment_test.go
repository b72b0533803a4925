package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glint-engine/glint/common"
)

func TestResolveRectFragment(t *testing.T) {
	tests := []struct {
		name    string
		u, v    float32
		radius  [2]float32
		fill    common.Color
		outline common.Color
		want    FragmentResult
	}{
		{
			name: "outline band near top edge",
			u:    0.5, v: 0.02,
			radius:  [2]float32{0, 0.05},
			fill:    common.ColorTransparent,
			outline: common.ColorRed,
			want:    FragmentOutline,
		},
		{
			name: "outline band near bottom edge",
			u:    0.5, v: 0.98,
			radius:  [2]float32{0, 0.05},
			fill:    common.ColorTransparent,
			outline: common.ColorRed,
			want:    FragmentOutline,
		},
		{
			name: "transparent interior discards",
			u:    0.5, v: 0.5,
			radius:  [2]float32{0, 0.05},
			fill:    common.ColorTransparent,
			outline: common.ColorRed,
			want:    FragmentDiscard,
		},
		{
			name: "filled interior",
			u:    0.5, v: 0.5,
			radius:  [2]float32{0.1, 0.1},
			fill:    common.ColorBlue,
			outline: common.ColorRed,
			want:    FragmentFill,
		},
		{
			name: "no outline set falls through to fill",
			u:    0.02, v: 0.02,
			radius:  [2]float32{0.05, 0.05},
			fill:    common.ColorGreen,
			outline: common.ColorTransparent,
			want:    FragmentFill,
		},
		{
			name: "no outline and transparent fill discards",
			u:    0.02, v: 0.02,
			radius:  [2]float32{0.05, 0.05},
			fill:    common.ColorTransparent,
			outline: common.ColorTransparent,
			want:    FragmentDiscard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRectFragment(tt.u, tt.v, tt.radius, tt.fill, tt.outline)
			assert.Equal(t, tt.want, got)
		})
	}
}
