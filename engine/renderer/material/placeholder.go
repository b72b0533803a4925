package material

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/glint-engine/glint/common"
)

// placeholderSize is the edge length in pixels of the built-in placeholder.
const placeholderSize = 8

// PlaceholderTexture generates the built-in magenta and black checkerboard
// substituted when a referenced texture is missing. The pattern is loud on
// purpose so a missing asset is visible at a glance.
//
// Returns:
//   - common.TextureStagingData: the staged checkerboard pixels
func PlaceholderTexture() common.TextureStagingData {
	pixels := make([]byte, placeholderSize*placeholderSize*4)
	for y := range placeholderSize {
		for x := range placeholderSize {
			i := (y*placeholderSize + x) * 4
			if (x+y)%2 == 0 {
				pixels[i] = 0xFF   // r
				pixels[i+2] = 0xFF // b
			}
			pixels[i+3] = 0xFF // a
		}
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  placeholderSize,
		Height: placeholderSize,
	}
}

// DefaultSampler returns the sampler configuration applied to textures
// registered without an override: nearest filtering with edge clamping,
// matching the crisp pixel look 2D atlases expect.
//
// Returns:
//   - common.SamplerStagingData: the default sampler configuration
func DefaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
		LodMaxClamp:  32,
	}
}
