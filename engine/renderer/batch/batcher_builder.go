package batch

import (
	"time"
)

// poolIdleTimeout is how long encode workers linger idle before exiting.
// Workers respawn on demand the next frame.
const poolIdleTimeout = 1 * time.Second

// BatcherBuilderOption is a function that configures a Batcher during construction.
type BatcherBuilderOption func(*batcherImpl)

// WithBucketSize sets the layer-bucket width. Records whose layers fall in
// the same bucket of this width share batches; a smaller width gives finer
// draw-order control at the cost of more draw calls.
//
// Parameters:
//   - size: the bucket width in layer units, must be positive
//
// Returns:
//   - BatcherBuilderOption: a function that applies the bucket size option
func WithBucketSize(size float32) BatcherBuilderOption {
	return func(b *batcherImpl) {
		if size > 0 {
			b.bucketSize = size
		}
	}
}

// WithEncodeWorkers sets the number of worker goroutines used to encode
// groups in parallel. Zero keeps encoding on the render thread.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - BatcherBuilderOption: a function that applies the worker count option
func WithEncodeWorkers(workers int) BatcherBuilderOption {
	return func(b *batcherImpl) {
		b.workers = workers
	}
}
