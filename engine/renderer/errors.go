package renderer

import (
	"errors"
	"fmt"
)

// ErrSurfaceLost indicates the presentation surface was invalidated, usually
// by a resize, minimize, or display change. The renderer reconfigures the
// surface and skips the frame; the next frame renders normally.
var ErrSurfaceLost = errors.New("surface lost")

// ErrFrameSkipped is returned by RenderFrame when the frame was dropped
// during recovery. The submitted records for the frame are consumed; callers
// should simply continue their loop.
var ErrFrameSkipped = errors.New("frame skipped")

// ErrDeviceLost indicates the GPU device was lost and cannot be recovered by
// reconfiguring the surface.
var ErrDeviceLost = errors.New("device lost")

// RenderError is a terminal failure: once RenderFrame returns one, the
// renderer refuses further frames and the same error is returned on every
// subsequent call. Recoverable conditions (a lost surface, a missing texture,
// a malformed record) never surface as a RenderError.
type RenderError struct {
	// Op names the frame stage that failed, e.g. "begin frame".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
