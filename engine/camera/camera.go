package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// zoomEpsilon is the minimum zoom factor. Smaller requested zooms are clamped
// so the projection matrix never becomes singular.
const zoomEpsilon = 1e-4

// depthRemap rescales GL clip z in [-1, 1] to the [0, 1] range WebGPU clips
// and writes depth against. Composed into the projection so the world near/far
// range spans the full depth buffer instead of losing the positive half to
// clipping. Column-major: z' = 0.5*z + 0.5*w.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	zoom     float32
	viewport [2]uint32

	near float32
	far  float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
	inverseViewMatrix    mgl32.Mat4
}

// Camera is an orthographic 2D camera. It holds the world-space position,
// zoom factor and viewport extent, and recomputes its four matrices together
// on every Update so they are never partially stale. The inverse view
// matrix's first two columns are the screen-space right and up axes used for
// sprite billboarding.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Zoom returns the zoom factor in pixels per world unit.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// Viewport returns the viewport extent in pixels.
	//
	// Returns:
	//   - width, height: the viewport extent
	Viewport() (width, height uint32)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current orthographic projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseViewMatrix returns the inverse of the current view matrix.
	// Columns 0 and 1 are the screen-space right and up axes.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse view matrix
	InverseViewMatrix() mgl32.Mat4

	// Update sets the camera state and recomputes all four matrices.
	// A zoom at or below zero is clamped to a minimum epsilon; a zero
	// viewport dimension is clamped to one pixel.
	//
	// Parameters:
	//   - position: the world-space camera position
	//   - zoom: the zoom factor in pixels per world unit
	//   - viewportWidth: the viewport width in pixels
	//   - viewportHeight: the viewport height in pixels
	Update(position mgl32.Vec3, zoom float32, viewportWidth, viewportHeight uint32)

	// Resize updates the viewport extent, keeping position and zoom, and
	// recomputes all four matrices. Must be called whenever the surface
	// resizes; sprite billboard math reads the recomputed inverse view.
	//
	// Parameters:
	//   - width: the viewport width in pixels
	//   - height: the viewport height in pixels
	Resize(width, height uint32)

	// GPU returns the uniform-buffer representation of the camera.
	//
	// Returns:
	//   - GPUCameraUniform: the GPU-aligned camera uniform
	GPU() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orthographic 2D camera looking down the negative z
// axis with y up.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		zoom:     1.0,
		viewport: [2]uint32{1, 1},
		near:     -1000.0,
		far:      1000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Viewport() (width, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport[0], c.viewport[1]
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewMatrix
}

func (c *cameraImpl) Update(position mgl32.Vec3, zoom float32, viewportWidth, viewportHeight uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.zoom = zoom
	c.viewport = [2]uint32{viewportWidth, viewportHeight}
	c.updateMatrices()
}

func (c *cameraImpl) Resize(width, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = [2]uint32{width, height}
	c.updateMatrices()
}

func (c *cameraImpl) GPU() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := GPUCameraUniform{}
	copy(g.ViewProj[:], c.viewProjectionMatrix[:])
	copy(g.View[:], c.viewMatrix[:])
	copy(g.Proj[:], c.projectionMatrix[:])
	copy(g.ViewInv[:], c.inverseViewMatrix[:])
	return g
}

// updateMatrices recalculates the view, projection, view-projection and
// inverse view matrices. All four are recomputed together so no reader can
// observe a partially stale set. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	zoom := math32.Max(c.zoom, zoomEpsilon)
	w := math32.Max(float32(c.viewport[0]), 1)
	h := math32.Max(float32(c.viewport[1]), 1)

	halfW := w / (2 * zoom)
	halfH := h / (2 * zoom)

	c.viewMatrix = mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	c.projectionMatrix = depthRemap.Mul4(mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.near, c.far))
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewMatrix = c.viewMatrix.Inv()
}
