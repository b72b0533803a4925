package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{}, c.Position())
	assert.Equal(t, float32(1), c.Zoom())

	w, h := c.Viewport()
	assert.Equal(t, uint32(1), w)
	assert.Equal(t, uint32(1), h)
}

func TestCameraBuilderOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{10, 20, 0}),
		WithZoom(2),
		WithViewport(800, 600),
	)
	assert.Equal(t, mgl32.Vec3{10, 20, 0}, c.Position())
	assert.Equal(t, float32(2), c.Zoom())

	w, h := c.Viewport()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
}

func TestCameraViewFollowsPosition(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	c.Update(mgl32.Vec3{5, -3, 0}, 1, 640, 480)

	// A point at the camera position maps to the view-space origin.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{5, -3, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
	assert.InDelta(t, 0, p.Z(), 1e-6)
}

func TestCameraProjectionSpansDepthRange(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))

	// The default near/far range of [-1000, 1000] must map onto clip z in
	// [0, 1]: world z inside the range never clips, the range midpoint z=0
	// lands at 0.5, and depth grows as z recedes.
	tests := []struct {
		name   string
		worldZ float32
		want   float32
	}{
		{name: "behind limit", worldZ: 1000, want: 0},
		{name: "behind midpoint", worldZ: 500, want: 0.25},
		{name: "origin", worldZ: 0, want: 0.5},
		{name: "ahead midpoint", worldZ: -500, want: 0.75},
		{name: "ahead limit", worldZ: -1000, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, tt.worldZ, 1})
			z := clip.Z() / clip.W()
			assert.InDelta(t, tt.want, z, 1e-5)
			assert.GreaterOrEqual(t, z, float32(0))
			assert.LessOrEqual(t, z, float32(1))
		})
	}
}

func TestCameraMatricesNeverPartiallyStale(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	c.Update(mgl32.Vec3{100, 50, 0}, 2, 1024, 768)

	// view_proj always equals proj * view for the same update.
	want := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	got := c.ViewProjectionMatrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}

	// view_inv is the true inverse of view.
	id := c.ViewMatrix().Mul4(c.InverseViewMatrix())
	ident := mgl32.Ident4()
	for i := range id {
		assert.InDelta(t, ident[i], id[i], 1e-5, "element %d", i)
	}
}

func TestCameraInverseViewColumnsOrthonormal(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
		zoom     float32
		w, h     uint32
	}{
		{name: "unit zoom", position: mgl32.Vec3{0, 0, 0}, zoom: 1, w: 640, h: 480},
		{name: "offset camera", position: mgl32.Vec3{123, -456, 7}, zoom: 3.5, w: 1920, h: 1080},
		{name: "tiny zoom clamped", position: mgl32.Vec3{1, 1, 0}, zoom: 0, w: 800, h: 600},
		{name: "narrow viewport", position: mgl32.Vec3{0, 0, 0}, zoom: 0.25, w: 1, h: 2160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			c.Update(tt.position, tt.zoom, tt.w, tt.h)

			inv := c.InverseViewMatrix()
			right := mgl32.Vec3{inv.At(0, 0), inv.At(1, 0), inv.At(2, 0)}
			up := mgl32.Vec3{inv.At(0, 1), inv.At(1, 1), inv.At(2, 1)}

			assert.InDelta(t, 1, right.Len(), 1e-5)
			assert.InDelta(t, 1, up.Len(), 1e-5)
			assert.InDelta(t, 0, right.Dot(up), 1e-5)
		})
	}
}

func TestCameraDegenerateZoomClamped(t *testing.T) {
	c := NewCamera()
	c.Update(mgl32.Vec3{}, 0, 640, 480)

	p := c.ProjectionMatrix()
	for i := range p {
		assert.False(t, math.IsNaN(float64(p[i])), "element %d is NaN", i)
		assert.False(t, math.IsInf(float64(p[i]), 0), "element %d is Inf", i)
	}
}

func TestCameraResizeRecomputes(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	before := c.ProjectionMatrix()

	c.Resize(1280, 480)
	after := c.ProjectionMatrix()
	assert.NotEqual(t, before, after, "projection must change with the viewport")

	// Doubling the width halves the x scale of an ortho projection.
	assert.InDelta(t, before.At(0, 0)/2, after.At(0, 0), 1e-6)
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	c.Update(mgl32.Vec3{1, 2, 3}, 2, 640, 480)

	g := c.GPU()
	require.Equal(t, 256, g.Size())

	buf := g.Marshal()
	require.Len(t, buf, 256)

	vp := c.ViewProjectionMatrix()
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	inv := c.InverseViewMatrix()
	for i := range 16 {
		assert.Equal(t, math.Float32bits(vp[i]), binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, math.Float32bits(view[i]), binary.LittleEndian.Uint32(buf[64+i*4:]))
		assert.Equal(t, math.Float32bits(proj[i]), binary.LittleEndian.Uint32(buf[128+i*4:]))
		assert.Equal(t, math.Float32bits(inv[i]), binary.LittleEndian.Uint32(buf[192+i*4:]))
	}
}
