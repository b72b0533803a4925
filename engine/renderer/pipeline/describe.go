package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/sprite.wgsl
var spriteSource string

//go:embed assets/ui_rect.wgsl
var uiRectSource string

//go:embed assets/glyph.wgsl
var glyphSource string

// Strides of the per-kind instance records, part of the vertex-input byte
// contract.
const (
	SpriteInstanceStride = 28
	RectInstanceStride   = 40
)

// QuadVertexLayout is the shared unit-quad vertex buffer layout: position and
// UV, 16 bytes per vertex, stepped per vertex at shader locations 0 and 1.
//
// Returns:
//   - wgpu.VertexBufferLayout: the quad vertex buffer layout
func QuadVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: QuadVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// SpriteInstanceLayout is the sprite instance buffer layout, stepped per
// instance: pos_scale, scale_y, index, flip at shader locations 2 to 5.
//
// Returns:
//   - wgpu.VertexBufferLayout: the sprite instance buffer layout
func SpriteInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: SpriteInstanceStride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatUint32, Offset: 20, ShaderLocation: 4},
			{Format: wgpu.VertexFormatUint32, Offset: 24, ShaderLocation: 5},
		},
	}
}

// RectInstanceLayout is the rect and glyph instance buffer layout, stepped
// per instance: rect, color, layer, radius, outline_color at shader
// locations 2 to 6.
//
// Returns:
//   - wgpu.VertexBufferLayout: the rect instance buffer layout
func RectInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: RectInstanceStride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
			{Format: wgpu.VertexFormatUint32, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32, Offset: 20, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 5},
			{Format: wgpu.VertexFormatUint32, Offset: 32, ShaderLocation: 6},
		},
	}
}

// Textured reports whether the kind's pipeline binds a texture bind group at
// group 1 in addition to the camera bind group at group 0.
//
// Returns:
//   - bool: true for the sprite and glyph pipelines
func (k Kind) Textured() bool {
	return k == KindSprite || k == KindGlyph
}

// InstanceStride returns the byte stride of the kind's instance record.
//
// Returns:
//   - int: the fixed record size in bytes
//   - error: an error for an unrecognized kind
func (k Kind) InstanceStride() (int, error) {
	switch k {
	case KindSprite:
		return SpriteInstanceStride, nil
	case KindUIRect, KindGlyph:
		return RectInstanceStride, nil
	default:
		return 0, fmt.Errorf("unrecognized pipeline kind %d", k)
	}
}

// Describe builds the configured pipeline for a kind. The dispatch table is
// fixed and exhaustive over the closed kind set; the backend compiles the
// result against the surface format once and caches it under PipelineKey.
//
// Parameters:
//   - k: the pipeline kind
//
// Returns:
//   - Pipeline: the configured pipeline, not yet compiled
//   - error: an error for an unrecognized kind
func Describe(k Kind) (Pipeline, error) {
	switch k {
	case KindSprite:
		return NewPipeline(k.String(), spriteSource,
			WithVertexLayouts(QuadVertexLayout(), SpriteInstanceLayout()),
			WithMaterial(true),
		), nil
	case KindUIRect:
		return NewPipeline(k.String(), uiRectSource,
			WithVertexLayouts(QuadVertexLayout(), RectInstanceLayout()),
			// Screen-space overlays draw over the world in batch order;
			// testing against sprite depths would hide them wherever a
			// sprite already drew.
			WithDepthTestEnabled(false),
			WithDepthWriteEnabled(false),
		), nil
	case KindGlyph:
		return NewPipeline(k.String(), glyphSource,
			WithVertexLayouts(QuadVertexLayout(), RectInstanceLayout()),
			WithMaterial(true),
			WithDepthTestEnabled(false),
			WithDepthWriteEnabled(false),
		), nil
	default:
		return nil, fmt.Errorf("unrecognized pipeline kind %d", k)
	}
}
