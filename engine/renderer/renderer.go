package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glint-engine/glint"
	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/camera"
	"github.com/glint-engine/glint/engine/renderer/batch"
	"github.com/glint-engine/glint/engine/renderer/material"
	"github.com/glint-engine/glint/engine/renderer/pipeline"
	"github.com/glint-engine/glint/engine/window"
)

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	backend RendererBackend
	camera  camera.Camera
	batcher batch.Batcher
	cache   material.Cache

	pipelines      map[pipeline.Kind]pipeline.Pipeline
	pipelinesReady bool

	state       frameState
	retries     int
	retryBudget int
	fatal       error

	clearColor common.Color
	dropped    int

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	bucketSize           float32
	encodeWorkers        int
	cacheOptions         []material.CacheBuilderOption
}

// defaultRetryBudget bounds consecutive skipped frames while the surface is
// being recovered before the renderer gives up.
const defaultRetryBudget = 3

// Renderer is the high-level frame loop over the batching pipeline: visual
// records submitted between frames are grouped into instanced batches,
// uploaded, and drawn in a single render pass per RenderFrame call. All
// methods must be called from the render thread.
type Renderer interface {
	// Submit queues visual records for the next frame. Records are consumed
	// by the next RenderFrame call whether it presents or skips; nothing is
	// retained across frames.
	//
	// Parameters:
	//   - visuals: the records to queue
	Submit(visuals ...batch.Visual)

	// SetCamera positions the camera for subsequent frames.
	//
	// Parameters:
	//   - position: the world-space camera position
	//   - zoom: the zoom factor, clamped away from zero
	SetCamera(position mgl32.Vec3, zoom float32)

	// Camera returns the camera driving the frame's view and projection.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// RegisterTexture stages a texture and returns its handle. The GPU
	// resources are created lazily on first use.
	//
	// Parameters:
	//   - data: the staged RGBA pixel data
	//   - options: per-texture options (sheet metadata, sampler overrides)
	//
	// Returns:
	//   - material.Handle: the generation-tagged handle
	RegisterTexture(data common.TextureStagingData, options ...material.TextureOption) material.Handle

	// UpdateTexture replaces a registered texture's pixels and bumps its
	// generation. Previously issued handles keep drawing the new content.
	//
	// Parameters:
	//   - id: the texture to replace
	//   - data: the new staged RGBA pixel data
	//
	// Returns:
	//   - material.Handle: the handle carrying the new generation
	//   - error: an error when id is not registered
	UpdateTexture(id material.TextureID, data common.TextureStagingData) (material.Handle, error)

	// InvalidateTexture releases a texture's GPU resources so they are
	// rebuilt from staging on next use.
	//
	// Parameters:
	//   - id: the texture to invalidate
	InvalidateTexture(id material.TextureID)

	// RemoveTexture unregisters a texture and releases its GPU resources.
	// Records still referencing it draw with the placeholder.
	//
	// Parameters:
	//   - id: the texture to remove
	RemoveTexture(id material.TextureID)

	// Resize reconfigures the surface and camera viewport for a new window
	// size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the
	// next surface reconfiguration.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RenderFrame renders and presents one frame from the records submitted
	// since the previous call.
	//
	// A nil return means the frame presented. ErrFrameSkipped (matched with
	// errors.Is) means the frame was dropped, most commonly because a lost
	// surface was reconfigured; the caller should continue its loop. A
	// *RenderError is terminal: the renderer refuses further frames and
	// returns the same error on every subsequent call. RenderFrame never
	// panics on submitted record data.
	//
	// Returns:
	//   - error: nil, ErrFrameSkipped, or a terminal *RenderError
	RenderFrame() error

	// Dropped reports how many records the last frame discarded for
	// malformed data (unknown kind, out-of-range sprite index).
	//
	// Returns:
	//   - int: the dropped-record count of the last frame
	Dropped() int

	// Release frees all GPU resources. The renderer must not be used
	// afterward.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a Renderer presenting to the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window supplying the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &rendererImpl{
		retryBudget: defaultRetryBudget,
		clearColor:  common.ColorBlack,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAAOff
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	return newRenderer(r, win.Width(), win.Height())
}

// newRenderer finishes construction around an already-created backend.
func newRenderer(r *rendererImpl, width, height int) *rendererImpl {
	r.width = width
	r.height = height

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.fatal = &RenderError{Op: "surface configuration", Err: err}
	}

	if r.camera == nil {
		r.camera = camera.NewCamera(camera.WithViewport(uint32(width), uint32(height)))
	}

	var batcherOptions []batch.BatcherBuilderOption
	if r.bucketSize > 0 {
		batcherOptions = append(batcherOptions, batch.WithBucketSize(r.bucketSize))
	}
	if r.encodeWorkers > 0 {
		batcherOptions = append(batcherOptions, batch.WithEncodeWorkers(r.encodeWorkers))
	}
	r.batcher = batch.NewBatcher(batcherOptions...)
	r.cache = material.NewCache(r.cacheOptions...)
	r.pipelines = make(map[pipeline.Kind]pipeline.Pipeline)

	return r
}

func (r *rendererImpl) Submit(visuals ...batch.Visual) {
	for _, v := range visuals {
		r.batcher.Add(v)
	}
}

func (r *rendererImpl) SetCamera(position mgl32.Vec3, zoom float32) {
	r.camera.Update(position, zoom, uint32(r.width), uint32(r.height))
}

func (r *rendererImpl) Camera() camera.Camera {
	return r.camera
}

func (r *rendererImpl) RegisterTexture(data common.TextureStagingData, options ...material.TextureOption) material.Handle {
	return r.cache.Register(data, options...)
}

func (r *rendererImpl) UpdateTexture(id material.TextureID, data common.TextureStagingData) (material.Handle, error) {
	return r.cache.Update(id, data)
}

func (r *rendererImpl) InvalidateTexture(id material.TextureID) {
	r.cache.Invalidate(id)
}

func (r *rendererImpl) RemoveTexture(id material.TextureID) {
	r.cache.Remove(id)
}

func (r *rendererImpl) Resize(width, height int) {
	r.width = width
	r.height = height
	r.camera.Resize(uint32(width), uint32(height))
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		// BeginFrame will fail and run the surface recovery path.
		glint.Logger().Warn("surface reconfiguration failed",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Any("error", err))
	}
}

func (r *rendererImpl) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *rendererImpl) Dropped() int {
	return r.dropped
}

func (r *rendererImpl) RenderFrame() error {
	if r.fatal != nil {
		return r.fatal
	}

	// Submitted records are consumed whether the frame presents or skips.
	defer r.batcher.Begin()

	if !r.pipelinesReady {
		if err := r.registerPipelines(); err != nil {
			r.fatal = &RenderError{Op: "pipeline registration", Err: err}
			return r.fatal
		}
		r.pipelinesReady = true
	}

	gpu := r.camera.GPU()
	if err := r.backend.WriteCameraUniform(gpu.Marshal()); err != nil {
		return r.skipFrame("camera upload", err)
	}
	r.state = frameStateCameraUpdated

	r.batcher.Encode(r.cache)
	batches := r.batcher.Batches()
	r.dropped = r.batcher.Dropped()
	r.state = frameStateBatchesCollected

	drawable := make([]*batch.Batch, 0, len(batches))
	for _, bt := range batches {
		if err := bt.Stream.Upload(r.backend); err != nil {
			glint.Logger().Error("instance upload failed, batch skipped",
				slog.String("kind", bt.Key.Kind.String()),
				slog.Uint64("texture", uint64(bt.Key.Texture)),
				slog.Any("error", err))
			continue
		}
		drawable = append(drawable, bt)
	}
	r.state = frameStateUploaded

	if err := r.backend.BeginFrame(r.clearColor); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			return r.recoverSurface(err)
		}
		return r.skipFrame("begin frame", err)
	}

	for _, bt := range drawable {
		var bindGroup material.BindGroup
		if bt.Key.Kind.Textured() {
			var err error
			bindGroup, err = r.cache.BindGroup(r.backend, bt.Texture)
			if err != nil {
				glint.Logger().Error("material bind group failed, batch skipped",
					slog.String("kind", bt.Key.Kind.String()),
					slog.Uint64("texture", uint64(bt.Key.Texture)),
					slog.Any("error", err))
				continue
			}
		}
		r.backend.Draw(r.pipelines[bt.Key.Kind], bindGroup, bt.Stream.Buffer(), uint32(bt.Stream.Count()))
	}

	if err := r.backend.EndFrame(); err != nil {
		return r.skipFrame("end frame", err)
	}
	r.state = frameStateSubmitted

	r.backend.Present()
	r.state = frameStatePresented

	r.cache.Sweep()
	r.retries = 0
	r.state = frameStateIdle
	return nil
}

func (r *rendererImpl) Release() {
	r.batcher.Release()
	r.cache.Release()
	r.backend.Release()
}

// registerPipelines compiles the closed pipeline set against the surface
// format.
func (r *rendererImpl) registerPipelines() error {
	for _, k := range []pipeline.Kind{pipeline.KindSprite, pipeline.KindUIRect, pipeline.KindGlyph} {
		p, err := pipeline.Describe(k)
		if err != nil {
			return err
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return err
		}
		r.pipelines[k] = p
	}
	return nil
}

// skipFrame drops the frame for a transient error without entering surface
// recovery.
func (r *rendererImpl) skipFrame(op string, err error) error {
	glint.Logger().Warn("frame skipped",
		slog.String("op", op),
		slog.Any("error", err))
	r.state = frameStateIdle
	return fmt.Errorf("%s: %w", op, ErrFrameSkipped)
}

// recoverSurface reconfigures a lost surface and skips the frame. Consecutive
// lost frames count against the retry budget; a presented frame resets it.
func (r *rendererImpl) recoverSurface(cause error) error {
	r.state = frameStateRecovering
	r.retries++
	if r.retries > r.retryBudget {
		r.fatal = &RenderError{
			Op:  "surface recovery",
			Err: fmt.Errorf("%w: %d consecutive lost frames: %v", ErrDeviceLost, r.retries, cause),
		}
		return r.fatal
	}

	glint.Logger().Warn("surface lost, reconfiguring",
		slog.Int("attempt", r.retries),
		slog.Int("budget", r.retryBudget),
		slog.Any("error", cause))

	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.fatal = &RenderError{Op: "surface recovery", Err: err}
		return r.fatal
	}
	return fmt.Errorf("surface recovery: %w", ErrFrameSkipped)
}
