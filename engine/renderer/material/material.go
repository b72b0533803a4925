// package material maintains the texture registry and the per-texture bind
// group cache. Bind groups are keyed by texture identity and shared by every
// batch referencing that texture; generation-tagged handles make stale
// bindings detectable after a texture hot-swap.
package material

import (
	"fmt"
	"log/slog"

	"github.com/glint-engine/glint"
	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/instance"
)

// TextureID identifies a registered texture. IDs are never reused.
type TextureID uint64

// Handle is a generation-tagged reference to a registered texture. The
// generation increments on every texture replacement, so a handle issued
// before a hot-swap no longer matches the cache and forces a lazy rebuild
// instead of binding a released GPU resource.
type Handle struct {
	ID         TextureID
	Generation uint32
}

// BindGroup is the device-side binding a cache entry owns. *wgpu.BindGroup
// satisfies it.
type BindGroup interface {
	Release()
}

// TextureBackend creates texture bind groups. The renderer backend implements
// it over the real device.
type TextureBackend interface {
	// CreateTextureBindGroup uploads the staged texture and creates a bind
	// group holding its view, a sampler and the sheet uniform bytes.
	CreateTextureBindGroup(label string, texture common.TextureStagingData, sampler common.SamplerStagingData, sheet []byte) (BindGroup, error)
}

type entry struct {
	label      string
	staging    common.TextureStagingData
	sampler    common.SamplerStagingData
	sheet      instance.SpriteSheet
	generation uint32

	bindGroup       BindGroup
	builtGeneration uint32

	// idleFrames counts completed frames since the entry was last bound.
	idleFrames int
	referenced bool
}

type cacheImpl struct {
	nextID  TextureID
	entries map[TextureID]*entry

	placeholder        *entry
	defaultSampler     common.SamplerStagingData
	missingReported    map[TextureID]struct{}
	placeholderStaging common.TextureStagingData
}

// Cache is the texture registry and bind group cache. It is mutated only by
// the render thread; no method is safe for concurrent use.
type Cache interface {
	// Register stages a texture and returns its generation-tagged handle.
	//
	// Parameters:
	//   - data: the staged RGBA pixel data
	//   - options: per-texture options (sheet metadata, sampler overrides)
	//
	// Returns:
	//   - Handle: the handle for the new texture, generation zero
	Register(data common.TextureStagingData, options ...TextureOption) Handle

	// Update replaces the staged data of a registered texture and bumps its
	// generation. The cached bind group is rebuilt lazily on next use.
	//
	// Parameters:
	//   - id: the texture to replace
	//   - data: the new staged RGBA pixel data
	//
	// Returns:
	//   - Handle: the handle carrying the new generation
	//   - error: an error when id is not registered
	Update(id TextureID, data common.TextureStagingData) (Handle, error)

	// Handle returns the current handle for a registered texture.
	//
	// Parameters:
	//   - id: the texture identity
	//
	// Returns:
	//   - Handle: the current handle
	//   - bool: false when id is not registered
	Handle(id TextureID) (Handle, bool)

	// Sheet returns the sprite-sheet metadata registered for a texture.
	//
	// Parameters:
	//   - id: the texture identity
	//
	// Returns:
	//   - instance.SpriteSheet: the sheet metadata, a single-cell sheet by default
	//   - bool: false when id is not registered
	Sheet(id TextureID) (instance.SpriteSheet, bool)

	// BindGroup returns the cached bind group for the handle, creating or
	// rebuilding it when absent or built against an older generation. A
	// handle referencing an unknown texture resolves to the placeholder
	// bind group with a diagnostic, so rendering continues.
	//
	// Parameters:
	//   - backend: the device surface used to create bind groups
	//   - h: the generation-tagged texture handle
	//
	// Returns:
	//   - BindGroup: the bind group to draw with
	//   - error: an error when GPU bind group creation itself fails
	BindGroup(backend TextureBackend, h Handle) (BindGroup, error)

	// Invalidate removes a texture's cached bind group and releases its GPU
	// resources. The registration itself survives, so the next BindGroup
	// call rebuilds from staging. Call on texture replacement or
	// destruction by the asset collaborator.
	//
	// Parameters:
	//   - id: the texture identity
	Invalidate(id TextureID)

	// Remove unregisters a texture entirely and releases its GPU resources.
	//
	// Parameters:
	//   - id: the texture identity
	Remove(id TextureID)

	// Sweep ends a frame for the cache: bind groups that went a full frame
	// without being bound are released (the registration is kept), and the
	// per-frame missing-texture diagnostic throttle resets.
	Sweep()

	// Release frees every cached GPU bind group. Registrations survive.
	Release()
}

var _ Cache = &cacheImpl{}

// NewCache creates an empty texture cache.
//
// Parameters:
//   - options: functional options to configure the cache
//
// Returns:
//   - Cache: the newly created cache
func NewCache(options ...CacheBuilderOption) Cache {
	c := &cacheImpl{
		nextID:             1,
		entries:            make(map[TextureID]*entry),
		missingReported:    make(map[TextureID]struct{}),
		defaultSampler:     DefaultSampler(),
		placeholderStaging: PlaceholderTexture(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cacheImpl) Register(data common.TextureStagingData, options ...TextureOption) Handle {
	e := &entry{
		label:   fmt.Sprintf("texture_%d", c.nextID),
		staging: data,
		sampler: c.defaultSampler,
		sheet: instance.SpriteSheet{
			BoxSize:   [2]float32{float32(data.Width), float32(data.Height)},
			ImageSize: [2]float32{float32(data.Width), float32(data.Height)},
			NumCols:   1,
		},
	}
	for _, option := range options {
		option(e)
	}
	id := c.nextID
	c.nextID++
	c.entries[id] = e
	return Handle{ID: id}
}

func (c *cacheImpl) Update(id TextureID, data common.TextureStagingData) (Handle, error) {
	e, ok := c.entries[id]
	if !ok {
		return Handle{}, fmt.Errorf("texture %d is not registered", id)
	}
	e.staging = data
	e.generation++
	return Handle{ID: id, Generation: e.generation}, nil
}

func (c *cacheImpl) Handle(id TextureID) (Handle, bool) {
	e, ok := c.entries[id]
	if !ok {
		return Handle{}, false
	}
	return Handle{ID: id, Generation: e.generation}, true
}

func (c *cacheImpl) Sheet(id TextureID) (instance.SpriteSheet, bool) {
	e, ok := c.entries[id]
	if !ok {
		return instance.SpriteSheet{}, false
	}
	return e.sheet, true
}

func (c *cacheImpl) BindGroup(backend TextureBackend, h Handle) (BindGroup, error) {
	e, ok := c.entries[h.ID]
	if !ok || len(e.staging.Pixels) == 0 {
		c.reportMissing(h.ID)
		return c.placeholderBindGroup(backend)
	}

	if e.bindGroup == nil || e.builtGeneration != e.generation {
		if e.bindGroup != nil {
			e.bindGroup.Release()
			e.bindGroup = nil
		}
		sheet := e.sheet.GPU()
		bg, err := backend.CreateTextureBindGroup(e.label, e.staging, e.sampler, sheet.Marshal())
		if err != nil {
			return nil, fmt.Errorf("creating bind group for texture %d: %w", h.ID, err)
		}
		e.bindGroup = bg
		e.builtGeneration = e.generation
	}

	e.referenced = true
	return e.bindGroup, nil
}

func (c *cacheImpl) Invalidate(id TextureID) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	if e.bindGroup != nil {
		e.bindGroup.Release()
		e.bindGroup = nil
	}
}

func (c *cacheImpl) Remove(id TextureID) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	if e.bindGroup != nil {
		e.bindGroup.Release()
	}
	delete(c.entries, id)
}

func (c *cacheImpl) Sweep() {
	for id, e := range c.entries {
		if e.referenced {
			e.referenced = false
			e.idleFrames = 0
			continue
		}
		e.idleFrames++
		if e.idleFrames >= 1 && e.bindGroup != nil {
			glint.Logger().Debug("evicting idle texture bind group", slog.Uint64("texture", uint64(id)))
			e.bindGroup.Release()
			e.bindGroup = nil
		}
	}
	clear(c.missingReported)
}

func (c *cacheImpl) Release() {
	for _, e := range c.entries {
		if e.bindGroup != nil {
			e.bindGroup.Release()
			e.bindGroup = nil
		}
	}
	if c.placeholder != nil && c.placeholder.bindGroup != nil {
		c.placeholder.bindGroup.Release()
		c.placeholder.bindGroup = nil
	}
}

// placeholderBindGroup lazily builds the well-known placeholder binding used
// when a referenced texture is missing.
func (c *cacheImpl) placeholderBindGroup(backend TextureBackend) (BindGroup, error) {
	if c.placeholder == nil {
		c.placeholder = &entry{
			label:   "texture_placeholder",
			staging: c.placeholderStaging,
			sampler: c.defaultSampler,
			sheet: instance.SpriteSheet{
				BoxSize:   [2]float32{float32(c.placeholderStaging.Width), float32(c.placeholderStaging.Height)},
				ImageSize: [2]float32{float32(c.placeholderStaging.Width), float32(c.placeholderStaging.Height)},
				NumCols:   1,
			},
		}
	}
	if c.placeholder.bindGroup == nil {
		sheet := c.placeholder.sheet.GPU()
		bg, err := backend.CreateTextureBindGroup(c.placeholder.label, c.placeholder.staging, c.placeholder.sampler, sheet.Marshal())
		if err != nil {
			return nil, fmt.Errorf("creating placeholder bind group: %w", err)
		}
		c.placeholder.bindGroup = bg
	}
	return c.placeholder.bindGroup, nil
}

// reportMissing logs a missing-texture diagnostic at most once per texture
// per frame.
func (c *cacheImpl) reportMissing(id TextureID) {
	if _, seen := c.missingReported[id]; seen {
		return
	}
	c.missingReported[id] = struct{}{}
	glint.Logger().Warn("texture missing, substituting placeholder", slog.Uint64("texture", uint64(id)))
}
