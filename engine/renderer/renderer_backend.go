package renderer

import (
	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/instance"
	"github.com/glint-engine/glint/engine/renderer/material"
	"github.com/glint-engine/glint/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default:
	// instanced quads resolve their edges in the fragment shader, so multisampling buys
	// little for 2D scenes.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8
)

// RendererBackend is the GPU-facing seam the frame loop drives. It owns the
// surface, the shared quad geometry, and the camera uniform; it also creates
// instance buffers and texture bind groups on behalf of the stream and
// material layers.
//
// Errors returned from BeginFrame are classified by the caller with
// errors.Is: ErrSurfaceLost means reconfigure and skip, ErrDeviceLost means
// the renderer is done.
type RendererBackend interface {
	instance.BufferBackend
	material.TextureBackend

	// ConfigureSurface (re)configures the surface, swapchain, and depth
	// target for the given size. Called on init, on resize, and after a
	// lost surface.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface or its attachments could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. A call to
	// ConfigureSurface is required for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterPipeline compiles the pipeline's WGSL module against the
	// surface format and attaches the result via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline to compile
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterPipeline(p pipeline.Pipeline) error

	// WriteCameraUniform uploads the marshaled camera uniform block for the
	// frame. The backend owns the uniform buffer and its bind group.
	//
	// Parameters:
	//   - data: the marshaled camera uniform bytes
	//
	// Returns:
	//   - error: an error if the queue write fails
	WriteCameraUniform(data []byte) error

	// BeginFrame acquires the next swapchain texture and begins the frame's
	// render pass, clearing color and depth. Must be paired with EndFrame.
	//
	// Parameters:
	//   - clear: the clear color for the frame
	//
	// Returns:
	//   - error: ErrSurfaceLost (wrapped) if the swapchain texture could not
	//     be acquired
	BeginFrame(clear common.Color) error

	// Draw encodes one instanced draw within the current render pass: the
	// shared quad at vertex slot 0, the batch's instance buffer at slot 1,
	// and the camera bind group at group 0. bindGroup, when non-nil, is
	// bound at group 1 for textured pipelines.
	//
	// Parameters:
	//   - p: the registered pipeline to draw with
	//   - bindGroup: the material bind group, or nil for untextured pipelines
	//   - buffer: the batch's uploaded instance buffer
	//   - instanceCount: the number of instances to draw
	Draw(p pipeline.Pipeline, bindGroup material.BindGroup, buffer instance.DeviceBuffer, instanceCount uint32)

	// EndFrame ends the render pass and submits the command buffer to the
	// GPU queue. Does not present; call Present after EndFrame.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees the backend's GPU resources. The backend must not be
	// used afterward.
	Release()
}
