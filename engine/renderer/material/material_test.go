package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/instance"
)

type fakeBindGroup struct {
	label    string
	released bool
}

func (b *fakeBindGroup) Release() { b.released = true }

type fakeTextureBackend struct {
	created []*fakeBindGroup
}

func (f *fakeTextureBackend) CreateTextureBindGroup(label string, _ common.TextureStagingData, _ common.SamplerStagingData, _ []byte) (BindGroup, error) {
	bg := &fakeBindGroup{label: label}
	f.created = append(f.created, bg)
	return bg, nil
}

func staging(w, h uint32) common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: make([]byte, w*h*4),
		Width:  w,
		Height: h,
	}
}

func TestCacheRegisterAndHandle(t *testing.T) {
	c := NewCache()

	h1 := c.Register(staging(4, 4))
	h2 := c.Register(staging(8, 8))
	assert.NotEqual(t, h1.ID, h2.ID)
	assert.Zero(t, h1.Generation)

	got, ok := c.Handle(h1.ID)
	require.True(t, ok)
	assert.Equal(t, h1, got)

	_, ok = c.Handle(999)
	assert.False(t, ok)
}

func TestCacheBindGroupReused(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	h := c.Register(staging(4, 4))
	bg1, err := c.BindGroup(backend, h)
	require.NoError(t, err)
	bg2, err := c.BindGroup(backend, h)
	require.NoError(t, err)

	assert.Same(t, bg1, bg2)
	assert.Len(t, backend.created, 1)
}

func TestCacheGenerationMismatchRebuilds(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	h := c.Register(staging(4, 4))
	_, err := c.BindGroup(backend, h)
	require.NoError(t, err)

	h2, err := c.Update(h.ID, staging(4, 4))
	require.NoError(t, err)
	assert.Equal(t, h.Generation+1, h2.Generation)

	// The stale bind group is released and rebuilt lazily on next use.
	bg, err := c.BindGroup(backend, h2)
	require.NoError(t, err)
	require.Len(t, backend.created, 2)
	assert.True(t, backend.created[0].released)
	assert.Same(t, BindGroup(backend.created[1]), bg)

	// A stale handle also resolves to the rebuilt bind group.
	bgStale, err := c.BindGroup(backend, h)
	require.NoError(t, err)
	assert.Same(t, bg, bgStale)
	assert.Len(t, backend.created, 2)
}

func TestCacheUpdateUnknownTexture(t *testing.T) {
	c := NewCache()
	_, err := c.Update(42, staging(4, 4))
	assert.Error(t, err)
}

func TestCacheMissingTextureUsesPlaceholder(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	bg, err := c.BindGroup(backend, Handle{ID: 12345})
	require.NoError(t, err)
	require.Len(t, backend.created, 1)
	assert.Equal(t, "texture_placeholder", backend.created[0].label)

	// The placeholder is shared across misses.
	bg2, err := c.BindGroup(backend, Handle{ID: 54321})
	require.NoError(t, err)
	assert.Same(t, bg, bg2)
	assert.Len(t, backend.created, 1)
}

func TestCacheInvalidateReleasesAndRebuilds(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	h := c.Register(staging(4, 4))
	_, err := c.BindGroup(backend, h)
	require.NoError(t, err)

	c.Invalidate(h.ID)
	assert.True(t, backend.created[0].released)

	_, err = c.BindGroup(backend, h)
	require.NoError(t, err)
	assert.Len(t, backend.created, 2)
}

func TestCacheSweepEvictsAfterFullIdleFrame(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	h := c.Register(staging(4, 4))
	_, err := c.BindGroup(backend, h)
	require.NoError(t, err)

	// Referenced this frame: survives the sweep.
	c.Sweep()
	assert.False(t, backend.created[0].released)

	// Unreferenced for a full frame: evicted.
	c.Sweep()
	assert.True(t, backend.created[0].released)

	// The registration survives eviction and rebuilds on demand.
	_, err = c.BindGroup(backend, h)
	require.NoError(t, err)
	assert.Len(t, backend.created, 2)
}

func TestCacheRemove(t *testing.T) {
	c := NewCache()
	backend := &fakeTextureBackend{}

	h := c.Register(staging(4, 4))
	_, err := c.BindGroup(backend, h)
	require.NoError(t, err)

	c.Remove(h.ID)
	assert.True(t, backend.created[0].released)
	_, ok := c.Handle(h.ID)
	assert.False(t, ok)
}

func TestCacheSheetDefaultsToWholeImage(t *testing.T) {
	c := NewCache()
	h := c.Register(staging(64, 32))

	sheet, ok := c.Sheet(h.ID)
	require.True(t, ok)
	assert.Equal(t, uint32(1), sheet.NumCols)
	assert.Equal(t, float32(64), sheet.ImageSize.X())
	assert.Equal(t, float32(32), sheet.ImageSize.Y())
}

func TestCacheSheetOption(t *testing.T) {
	c := NewCache()
	want := instance.SpriteSheet{
		Padding:   [2]float32{1, 1},
		BoxSize:   [2]float32{16, 16},
		ImageSize: [2]float32{64, 32},
		NumCols:   4,
	}
	h := c.Register(staging(64, 32), WithSheet(want))

	got, ok := c.Sheet(h.ID)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestPlaceholderTexture(t *testing.T) {
	p := PlaceholderTexture()
	assert.Equal(t, uint32(placeholderSize), p.Width)
	assert.Equal(t, uint32(placeholderSize), p.Height)
	assert.Len(t, p.Pixels, placeholderSize*placeholderSize*4)

	// Alternating magenta and black, fully opaque.
	assert.Equal(t, byte(0xFF), p.Pixels[0])
	assert.Equal(t, byte(0x00), p.Pixels[1])
	assert.Equal(t, byte(0xFF), p.Pixels[2])
	assert.Equal(t, byte(0xFF), p.Pixels[3])
	assert.Equal(t, byte(0x00), p.Pixels[4])
	assert.Equal(t, byte(0xFF), p.Pixels[7])
}
