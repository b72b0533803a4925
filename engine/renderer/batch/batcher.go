package batch

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"

	"github.com/glint-engine/glint"
	"github.com/glint-engine/glint/engine/renderer/instance"
	"github.com/glint-engine/glint/engine/renderer/material"
	"github.com/glint-engine/glint/engine/renderer/pipeline"
)

// Key identifies one batch: all records sharing a key are drawn with a
// single call. Comparison is cheap integer compares.
type Key struct {
	Kind    pipeline.Kind
	Texture material.TextureID
	Bucket  int32
}

// Batch is one frame's worth of instances for a key, encoded and ready for
// upload. Stream bytes are valid until the next Begin.
type Batch struct {
	Key     Key
	Texture material.Handle
	Stream  *instance.Stream
}

// SheetSource resolves sprite-sheet metadata for a texture. material.Cache
// satisfies it.
type SheetSource interface {
	Sheet(id material.TextureID) (instance.SpriteSheet, bool)
}

// group carries one key's records and stream across frames so scratch
// capacity is reused instead of reallocated.
type group struct {
	key     Key
	texture material.Handle
	records []Visual
	stream  *instance.Stream

	// dropped is written only by the goroutine encoding this group.
	dropped int
}

type batcherImpl struct {
	groups     map[Key]*group
	bucketSize float32

	pool    worker.DynamicWorkerPool
	workers int

	ordered []*Batch
	dropped int
	taskID  int
}

// Batcher partitions the frame's visual records into batches keyed by
// (pipeline kind, texture, layer bucket). Within-batch order is submission
// order; records are never retained across frames. Add is called only
// between Begin and Encode on the render thread.
type Batcher interface {
	// Begin starts a new frame: every retained group's records and stream
	// are cleared without releasing capacity, and the dropped-record count
	// resets.
	Begin()

	// Add files a record under its batch key. A record with an
	// unrecognized pipeline kind is dropped with a diagnostic; the frame
	// continues.
	//
	// Parameters:
	//   - v: the visual record
	Add(v Visual)

	// Encode serializes every group's records into its instance stream.
	// Sprite records whose index falls outside their sheet are dropped
	// with a diagnostic. When the batcher was built with workers, groups
	// encode in parallel on the worker pool and Encode returns after the
	// join barrier, so callers always observe fully encoded streams.
	//
	// Parameters:
	//   - sheets: resolves sheet metadata per texture
	Encode(sheets SheetSource)

	// Batches returns the frame's non-empty batches ordered by bucket,
	// then kind priority (sprites, UI rects, glyphs), then texture
	// identity. The slice is valid until the next Begin.
	//
	// Returns:
	//   - []*Batch: the ordered batches
	Batches() []*Batch

	// Dropped returns the number of records dropped this frame for
	// contract violations.
	//
	// Returns:
	//   - int: the dropped-record count
	Dropped() int

	// Release frees every retained instance stream's device buffer.
	Release()
}

var _ Batcher = &batcherImpl{}

// NewBatcher creates an empty batcher.
//
// Parameters:
//   - options: functional options to configure the batcher
//
// Returns:
//   - Batcher: the newly created batcher
func NewBatcher(options ...BatcherBuilderOption) Batcher {
	b := &batcherImpl{
		groups:     make(map[Key]*group),
		bucketSize: 1.0,
	}
	for _, option := range options {
		option(b)
	}
	if b.workers > 0 {
		b.pool = worker.NewDynamicWorkerPool(b.workers, 256, poolIdleTimeout)
	}
	return b
}

func (b *batcherImpl) Begin() {
	for _, g := range b.groups {
		g.records = g.records[:0]
		g.stream.Reset()
		g.dropped = 0
	}
	b.ordered = b.ordered[:0]
	b.dropped = 0
}

func (b *batcherImpl) Add(v Visual) {
	stride, err := v.Kind.InstanceStride()
	if err != nil {
		b.dropped++
		glint.Logger().Warn("dropping record with unrecognized pipeline kind",
			slog.Int("kind", int(v.Kind)))
		return
	}

	key := Key{
		Kind:    v.Kind,
		Texture: v.Texture.ID,
		Bucket:  int32(math32.Floor(v.Layer / b.bucketSize)),
	}
	g, ok := b.groups[key]
	if !ok {
		g = &group{
			key:     key,
			texture: v.Texture,
			stream:  instance.NewStream(v.Kind.String(), stride),
		}
		b.groups[key] = g
	}
	g.texture = v.Texture
	g.records = append(g.records, v)
}

func (b *batcherImpl) Encode(sheets SheetSource) {
	if b.pool == nil {
		for _, g := range b.groups {
			g.encode(sheets)
			b.dropped += g.dropped
		}
		return
	}

	// Parallel encode with a WaitGroup barrier: pool workers are reused
	// across frames, and Encode only returns once every group's stream is
	// fully written.
	var wg sync.WaitGroup
	for _, g := range b.groups {
		if len(g.records) == 0 {
			continue
		}
		wg.Add(1)
		gCap := g
		b.taskID++
		b.pool.SubmitTask(worker.Task{
			ID: b.taskID,
			Do: func() (any, error) {
				defer wg.Done()
				gCap.encode(sheets)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, g := range b.groups {
		b.dropped += g.dropped
	}
}

// encode serializes the group's records into its stream, dropping sprite
// records whose sheet index is out of range.
func (g *group) encode(sheets SheetSource) {
	g.dropped = 0
	switch g.key.Kind {
	case pipeline.KindSprite:
		sheet, ok := sheets.Sheet(g.key.Texture)
		for _, v := range g.records {
			if ok && !sheet.Contains(v.Index) {
				g.dropped++
				glint.Logger().Warn("dropping sprite with out-of-range sheet index",
					slog.Uint64("texture", uint64(g.key.Texture)),
					slog.Uint64("index", uint64(v.Index)))
				continue
			}
			flip := uint32(0)
			if v.Flip {
				flip = 1
			}
			g.stream.Append(&instance.GPUSpriteInstance{
				PosScale: [4]float32{v.Position.X(), v.Position.Y(), v.Position.Z(), v.Scale.X()},
				ScaleY:   v.Scale.Y(),
				Index:    v.Index,
				Flip:     flip,
			})
		}
	case pipeline.KindUIRect, pipeline.KindGlyph:
		for _, v := range g.records {
			g.stream.Append(&instance.GPURectInstance{
				Rect:         [4]float32{v.Rect.X(), v.Rect.Y(), v.Rect.Z(), v.Rect.W()},
				Color:        uint32(v.Color),
				Layer:        rectDepth(v.Layer),
				Radius:       [2]float32{v.Radius.X(), v.Radius.Y()},
				OutlineColor: uint32(v.OutlineColor),
			})
		}
	}
}

func (b *batcherImpl) Batches() []*Batch {
	if b.ordered == nil {
		b.ordered = make([]*Batch, 0, len(b.groups))
	}
	if len(b.ordered) > 0 {
		return b.ordered
	}
	for _, g := range b.groups {
		if g.stream.Count() == 0 {
			continue
		}
		b.ordered = append(b.ordered, &Batch{
			Key:     g.key,
			Texture: g.texture,
			Stream:  g.stream,
		})
	}
	slices.SortFunc(b.ordered, func(a, c *Batch) int {
		if r := cmp.Compare(a.Key.Bucket, c.Key.Bucket); r != 0 {
			return r
		}
		if r := cmp.Compare(a.Key.Kind.Priority(), c.Key.Kind.Priority()); r != 0 {
			return r
		}
		return cmp.Compare(a.Key.Texture, c.Key.Texture)
	})
	return b.ordered
}

func (b *batcherImpl) Dropped() int {
	return b.dropped
}

func (b *batcherImpl) Release() {
	for _, g := range b.groups {
		g.stream.Release()
	}
}
