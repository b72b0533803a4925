// package batch groups the frame's submitted visual records into one
// instance stream per (pipeline kind, texture, layer bucket) key, so the
// draw-call count tracks distinct materials instead of entity count.
package batch

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/material"
	"github.com/glint-engine/glint/engine/renderer/pipeline"
)

// Visual is one entity's per-frame visual state as submitted by the
// simulation and UI-layout collaborators. The populated fields depend on
// Kind: sprites use Position, Scale, Index and Flip; rects and glyphs use
// Rect, Color, Radius and OutlineColor. Records are consumed every frame and
// never retained.
type Visual struct {
	// Kind selects the draw pipeline.
	Kind pipeline.Kind
	// Texture references the atlas to bind; ignored for untextured rects.
	Texture material.Handle
	// Layer orders draws; higher layers draw on top. Layers are grouped
	// into buckets for batching.
	Layer float32

	// Position is the sprite's world-space center.
	Position mgl32.Vec3
	// Scale is the sprite's world-space extent per axis.
	Scale mgl32.Vec2
	// Index is the flat sprite-sheet cell index.
	Index uint32
	// Flip mirrors the sprite horizontally.
	Flip bool

	// Rect is the rectangle in normalized device coordinates: x, y, w, h.
	Rect mgl32.Vec4
	// Color is the packed fill color.
	Color common.Color
	// Radius is the rounded-corner radius band in local UV units.
	Radius mgl32.Vec2
	// OutlineColor is the packed outline color; transparent disables the
	// outline.
	OutlineColor common.Color
}

// maxLayer is the largest meaningful layer value for screen-space records.
const maxLayer = 0xFFFF

// rectDepth maps a layer to the clip z written for rect and glyph instances.
// The value must stay inside [0, 1] or WebGPU clips the quad; draw order
// between screen-space records comes from batch ordering, not the depth
// buffer.
func rectDepth(layer float32) float32 {
	l := math32.Min(math32.Max(layer, 0), maxLayer)
	return (maxLayer - l) / maxLayer
}
