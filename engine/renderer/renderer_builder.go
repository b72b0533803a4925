package renderer

import (
	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/camera"
	"github.com/glint-engine/glint/engine/renderer/material"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*rendererImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAAOff. Higher values (MSAA8x) are
// adapter-dependent and may not be supported by all hardware.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff, MSAA4x, or MSAA8x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the frame is cleared to before drawing.
// The default is opaque black.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color common.Color) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.clearColor = color
	}
}

// WithRetryBudget sets how many consecutive frames may be skipped for
// surface recovery before RenderFrame fails terminally.
//
// Parameters:
//   - budget: the maximum consecutive skipped frames, must be positive
//
// Returns:
//   - RendererBuilderOption: a function that applies the retry budget option to a renderer
func WithRetryBudget(budget int) RendererBuilderOption {
	return func(r *rendererImpl) {
		if budget > 0 {
			r.retryBudget = budget
		}
	}
}

// WithBucketSize sets the layer-bucket width used when grouping records into
// batches.
//
// Parameters:
//   - size: the bucket width in layer units, must be positive
//
// Returns:
//   - RendererBuilderOption: a function that applies the bucket size option to a renderer
func WithBucketSize(size float32) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.bucketSize = size
	}
}

// WithEncodeWorkers sets the number of worker goroutines used to encode
// batches in parallel. Zero (the default) keeps encoding on the render thread.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count option to a renderer
func WithEncodeWorkers(workers int) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.encodeWorkers = workers
	}
}

// WithCamera sets the camera driving the frame's view and projection,
// replacing the default camera sized to the window.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the camera option to a renderer
func WithCamera(cam camera.Camera) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.camera = cam
	}
}

// WithMaterialCacheOptions forwards options to the renderer's material cache,
// e.g. a custom placeholder texture or default sampler.
//
// Parameters:
//   - options: the cache options to forward
//
// Returns:
//   - RendererBuilderOption: a function that applies the cache options to a renderer
func WithMaterialCacheOptions(options ...material.CacheBuilderOption) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.cacheOptions = append(r.cacheOptions, options...)
	}
}
