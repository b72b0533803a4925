package instance

import (
	"github.com/chewxy/math32"

	"github.com/glint-engine/glint/common"
)

// FragmentResult is the outcome of the rounded-rectangle fragment decision.
type FragmentResult int

const (
	// FragmentFill emits the fill color.
	FragmentFill FragmentResult = iota
	// FragmentOutline emits the outline color.
	FragmentOutline
	// FragmentDiscard writes nothing, realizing transparent interior holes.
	FragmentDiscard
)

// ResolveRectFragment is the host-side reference of the rounded-rectangle
// fragment decision the rect and glyph shaders implement. The local UV is
// folded to its distance from the nearest edge pair; when an outline color is
// set and the folded coordinate lies within the radius band the outline wins;
// otherwise a fully transparent fill discards the fragment and anything else
// fills.
//
// Parameters:
//   - u: local horizontal UV in [0, 1]
//   - v: local vertical UV in [0, 1]
//   - radius: the corner radius band per axis, in local UV units
//   - fill: the fill color
//   - outline: the outline color, ColorTransparent disables the outline
//
// Returns:
//   - FragmentResult: which color the fragment resolves to, or a discard
func ResolveRectFragment(u, v float32, radius [2]float32, fill, outline common.Color) FragmentResult {
	folded := [2]float32{
		math32.Min(u, 1-u),
		math32.Min(v, 1-v),
	}
	if outline != common.ColorTransparent &&
		(folded[0] <= radius[0] || folded[1] <= radius[1]) {
		return FragmentOutline
	}
	if fill == common.ColorTransparent {
		return FragmentDiscard
	}
	return FragmentFill
}
