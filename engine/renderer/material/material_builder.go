package material

import (
	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/instance"
)

// CacheBuilderOption is a function that configures a Cache during construction.
type CacheBuilderOption func(*cacheImpl)

// WithDefaultSampler sets the sampler applied to textures registered without
// a sampler override.
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - CacheBuilderOption: a function that applies the default sampler option
func WithDefaultSampler(sampler common.SamplerStagingData) CacheBuilderOption {
	return func(c *cacheImpl) {
		c.defaultSampler = sampler
	}
}

// WithPlaceholderTexture replaces the built-in checkerboard substituted for
// missing textures.
//
// Parameters:
//   - data: the staged RGBA pixel data for the placeholder
//
// Returns:
//   - CacheBuilderOption: a function that applies the placeholder option
func WithPlaceholderTexture(data common.TextureStagingData) CacheBuilderOption {
	return func(c *cacheImpl) {
		c.placeholderStaging = data
	}
}

// TextureOption is a function that configures a single texture registration.
type TextureOption func(*entry)

// WithSheet attaches sprite-sheet addressing metadata to the texture. Without
// it the texture is treated as a single-cell sheet covering the whole image.
//
// Parameters:
//   - sheet: the sheet addressing metadata
//
// Returns:
//   - TextureOption: a function that applies the sheet option
func WithSheet(sheet instance.SpriteSheet) TextureOption {
	return func(e *entry) {
		e.sheet = sheet
	}
}

// WithSampler overrides the cache's default sampler for this texture.
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - TextureOption: a function that applies the sampler option
func WithSampler(sampler common.SamplerStagingData) TextureOption {
	return func(e *entry) {
		e.sampler = sampler
	}
}

// WithLabel overrides the generated debug label for this texture.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - TextureOption: a function that applies the label option
func WithLabel(label string) TextureOption {
	return func(e *entry) {
		e.label = label
	}
}
