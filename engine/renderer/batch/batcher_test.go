package batch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-engine/glint/common"
	"github.com/glint-engine/glint/engine/renderer/instance"
	"github.com/glint-engine/glint/engine/renderer/material"
	"github.com/glint-engine/glint/engine/renderer/pipeline"
)

type fakeSheets map[material.TextureID]instance.SpriteSheet

func (f fakeSheets) Sheet(id material.TextureID) (instance.SpriteSheet, bool) {
	s, ok := f[id]
	return s, ok
}

func sprite(tex material.TextureID, index uint32, layer float32) Visual {
	return Visual{
		Kind:    pipeline.KindSprite,
		Texture: material.Handle{ID: tex},
		Layer:   layer,
		Scale:   mgl32.Vec2{1, 1},
		Index:   index,
	}
}

func uiRect(layer float32, color common.Color) Visual {
	return Visual{
		Kind:  pipeline.KindUIRect,
		Layer: layer,
		Rect:  mgl32.Vec4{-0.5, -0.5, 1, 1},
		Color: color,
	}
}

func fourCellSheet() instance.SpriteSheet {
	return instance.SpriteSheet{
		BoxSize:   [2]float32{16, 16},
		ImageSize: [2]float32{32, 32},
		NumCols:   2,
	}
}

func TestBatcherGroupsByTexture(t *testing.T) {
	b := NewBatcher()
	sheets := fakeSheets{1: fourCellSheet(), 2: fourCellSheet(), 3: fourCellSheet()}

	b.Begin()
	for i := range 1000 {
		b.Add(sprite(material.TextureID(i%3+1), uint32(i%4), 0))
	}
	b.Encode(sheets)

	batches := b.Batches()
	require.Len(t, batches, 3)

	total := 0
	for _, batch := range batches {
		total += batch.Stream.Count()
	}
	assert.Equal(t, 1000, total)
	assert.Zero(t, b.Dropped())
}

func TestBatcherEmptyInput(t *testing.T) {
	b := NewBatcher()
	b.Begin()
	b.Encode(fakeSheets{})
	assert.Empty(t, b.Batches())
}

func TestBatcherDropsUnknownKind(t *testing.T) {
	b := NewBatcher()
	b.Begin()
	b.Add(Visual{Kind: pipeline.Kind(99)})
	b.Add(uiRect(0, common.ColorRed))
	b.Encode(fakeSheets{})

	assert.Equal(t, 1, b.Dropped())
	require.Len(t, b.Batches(), 1)
	assert.Equal(t, 1, b.Batches()[0].Stream.Count())
}

func TestBatcherDropsOutOfRangeSpriteIndex(t *testing.T) {
	b := NewBatcher()
	sheets := fakeSheets{1: fourCellSheet()}

	b.Begin()
	b.Add(sprite(1, 0, 0))
	b.Add(sprite(1, 4, 0)) // sheet has cells 0..3
	b.Add(sprite(1, 3, 0))
	b.Encode(sheets)

	assert.Equal(t, 1, b.Dropped())
	require.Len(t, b.Batches(), 1)
	assert.Equal(t, 2, b.Batches()[0].Stream.Count())
}

func TestBatcherOrdering(t *testing.T) {
	b := NewBatcher()
	sheets := fakeSheets{1: fourCellSheet(), 2: fourCellSheet()}

	b.Begin()
	// Submitted in scrambled order across buckets, kinds and textures.
	b.Add(Visual{Kind: pipeline.KindGlyph, Texture: material.Handle{ID: 2}, Layer: 0, Rect: mgl32.Vec4{0, 0, 1, 1}, Color: common.ColorWhite})
	b.Add(uiRect(1, common.ColorRed))
	b.Add(sprite(2, 0, 0))
	b.Add(sprite(1, 0, 1))
	b.Add(sprite(1, 0, 0))
	b.Encode(sheets)

	batches := b.Batches()
	require.Len(t, batches, 5)

	// Bucket ascending; within a bucket sprites before UI before glyphs;
	// within a kind texture id ascending.
	assert.Equal(t, Key{Kind: pipeline.KindSprite, Texture: 1, Bucket: 0}, batches[0].Key)
	assert.Equal(t, Key{Kind: pipeline.KindSprite, Texture: 2, Bucket: 0}, batches[1].Key)
	assert.Equal(t, Key{Kind: pipeline.KindGlyph, Texture: 2, Bucket: 0}, batches[2].Key)
	assert.Equal(t, Key{Kind: pipeline.KindSprite, Texture: 1, Bucket: 1}, batches[3].Key)
	assert.Equal(t, Key{Kind: pipeline.KindUIRect, Texture: 0, Bucket: 1}, batches[4].Key)
}

func TestBatcherPreservesSubmissionOrderWithinBatch(t *testing.T) {
	b := NewBatcher()
	sheets := fakeSheets{1: fourCellSheet()}

	b.Begin()
	for i := range 4 {
		b.Add(sprite(1, uint32(i), 0))
	}
	b.Encode(sheets)

	batches := b.Batches()
	require.Len(t, batches, 1)

	// Indices appear in the stream in submission order.
	data := batches[0].Stream.Bytes()
	stride := batches[0].Stream.Stride()
	for i := range 4 {
		rec := &instance.GPUSpriteInstance{Index: uint32(i)}
		rec.PosScale = [4]float32{0, 0, 0, 1}
		rec.ScaleY = 1
		assert.Equal(t, rec.Marshal(), data[i*stride:(i+1)*stride], "record %d", i)
	}
}

func TestBatcherReusesStreamsAcrossFrames(t *testing.T) {
	b := NewBatcher()
	sheets := fakeSheets{1: fourCellSheet()}

	b.Begin()
	b.Add(sprite(1, 0, 0))
	b.Encode(sheets)
	first := b.Batches()
	require.Len(t, first, 1)
	stream := first[0].Stream

	b.Begin()
	b.Add(sprite(1, 1, 0))
	b.Encode(sheets)
	second := b.Batches()
	require.Len(t, second, 1)
	assert.Same(t, stream, second[0].Stream, "stream reused for the same key")

	// Records never leak across frames.
	assert.Equal(t, 1, second[0].Stream.Count())
}

func TestBatcherBucketsByLayer(t *testing.T) {
	b := NewBatcher(WithBucketSize(10))
	sheets := fakeSheets{1: fourCellSheet()}

	b.Begin()
	b.Add(sprite(1, 0, 0))
	b.Add(sprite(1, 0, 9.5))  // same bucket
	b.Add(sprite(1, 0, 10.5)) // next bucket
	b.Encode(sheets)

	batches := b.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, 2, batches[0].Stream.Count())
	assert.Equal(t, 1, batches[1].Stream.Count())
}

func TestBatcherParallelEncodeMatchesSequential(t *testing.T) {
	sheets := fakeSheets{1: fourCellSheet(), 2: fourCellSheet(), 3: fourCellSheet()}

	seq := NewBatcher()
	par := NewBatcher(WithEncodeWorkers(4))

	for _, b := range []Batcher{seq, par} {
		b.Begin()
		for i := range 300 {
			b.Add(sprite(material.TextureID(i%3+1), uint32(i%4), float32(i%2)))
		}
		b.Add(sprite(1, 99, 0)) // dropped in both
		b.Encode(sheets)
	}

	seqBatches := seq.Batches()
	parBatches := par.Batches()
	require.Equal(t, len(seqBatches), len(parBatches))
	assert.Equal(t, seq.Dropped(), par.Dropped())

	for i := range seqBatches {
		assert.Equal(t, seqBatches[i].Key, parBatches[i].Key)
		assert.Equal(t, seqBatches[i].Stream.Bytes(), parBatches[i].Stream.Bytes(), "batch %d", i)
	}
}

func TestRectDepthRemap(t *testing.T) {
	// Higher layers map to smaller depths so they draw on top.
	assert.Equal(t, float32(1), rectDepth(0))
	assert.Equal(t, float32(0), rectDepth(maxLayer))
	assert.Greater(t, rectDepth(10), rectDepth(20))

	// Out-of-range layers clamp instead of wrapping.
	assert.Equal(t, float32(1), rectDepth(-5))
	assert.Equal(t, float32(0), rectDepth(maxLayer+100))
}
