package instance

import (
	"fmt"
	"log/slog"

	"github.com/glint-engine/glint"
)

// DeviceBuffer is the device-side buffer a Stream owns. *wgpu.Buffer
// satisfies it.
type DeviceBuffer interface {
	Release()
}

// BufferBackend creates and writes device instance buffers. The renderer
// backend implements it over the real device and queue.
type BufferBackend interface {
	// CreateInstanceBuffer creates a vertex-usage buffer of the given size.
	CreateInstanceBuffer(label string, size uint64) (DeviceBuffer, error)
	// WriteInstanceBuffer writes data to the start of the buffer.
	WriteInstanceBuffer(buffer DeviceBuffer, data []byte) error
}

// Stream owns a host-side sequence of fixed-stride instance records and the
// device buffer they are uploaded to. The host sequence is rebuilt every
// frame; the device buffer capacity only grows, never shrinks automatically.
// Stream is not safe for concurrent use.
type Stream struct {
	label  string
	stride int

	host  []byte
	count int

	buffer   DeviceBuffer
	capacity uint64
}

// NewStream creates an empty stream for records of the given byte stride.
//
// Parameters:
//   - label: the debug label attached to the device buffer
//   - stride: the fixed record size in bytes, must be positive
//
// Returns:
//   - *Stream: the stream
func NewStream(label string, stride int) *Stream {
	return &Stream{label: label, stride: stride}
}

// Label returns the debug label the stream was created with.
func (s *Stream) Label() string { return s.label }

// Stride returns the fixed record size in bytes.
func (s *Stream) Stride() int { return s.stride }

// Count returns the number of records appended since the last Reset.
func (s *Stream) Count() int { return s.count }

// Bytes returns the host-side record bytes appended since the last Reset.
// The slice is invalidated by the next Append or Reset.
func (s *Stream) Bytes() []byte { return s.host }

// Capacity returns the device buffer capacity in bytes.
func (s *Stream) Capacity() uint64 { return s.capacity }

// Buffer returns the device buffer, nil before the first non-empty Upload.
func (s *Stream) Buffer() DeviceBuffer { return s.buffer }

// Reset clears the host-side record sequence to zero length without releasing
// host capacity or the device buffer.
func (s *Stream) Reset() {
	s.host = s.host[:0]
	s.count = 0
}

// Append serializes the record onto the host sequence. O(1) amortized.
//
// Parameters:
//   - rec: the record to append, its Size must equal the stream stride
func (s *Stream) Append(rec Record) {
	s.host = rec.AppendTo(s.host)
	s.count++
}

// grownCapacity is the buffer growth policy: reuse the current capacity when
// it suffices, otherwise double it, or jump straight to the requirement when
// doubling falls short.
func grownCapacity(current, required uint64) uint64 {
	if current >= required {
		return current
	}
	if g := current * 2; g >= required {
		return g
	}
	return required
}

// Upload copies the host records to the device buffer, creating or growing
// the buffer when its capacity is exceeded. An empty stream uploads nothing
// and leaves the device buffer untouched.
//
// Parameters:
//   - backend: the device surface used to create and write the buffer
//
// Returns:
//   - error: an error when buffer creation or the queue write fails
func (s *Stream) Upload(backend BufferBackend) error {
	if s.count == 0 {
		return nil
	}

	needed := uint64(len(s.host))
	if s.buffer == nil || s.capacity < needed {
		grown := grownCapacity(s.capacity, needed)
		buf, err := backend.CreateInstanceBuffer(s.label+" Instance Buffer", grown)
		if err != nil {
			return fmt.Errorf("creating %s instance buffer: %w", s.label, err)
		}
		if s.buffer != nil {
			s.buffer.Release()
		}
		glint.Logger().Debug("instance buffer grown",
			slog.String("stream", s.label),
			slog.Uint64("from", s.capacity),
			slog.Uint64("to", grown))
		s.buffer = buf
		s.capacity = grown
	}

	if err := backend.WriteInstanceBuffer(s.buffer, s.host); err != nil {
		return fmt.Errorf("writing %s instance buffer: %w", s.label, err)
	}
	return nil
}

// Shrink releases the device buffer and trims host capacity to the current
// length, so the next Upload recreates the buffer at exact size. Shrinking is
// explicit; it never happens as a side effect of Reset or Upload.
func (s *Stream) Shrink() {
	s.Release()
	if cap(s.host) > len(s.host) {
		trimmed := make([]byte, len(s.host))
		copy(trimmed, s.host)
		s.host = trimmed
	}
}

// Release frees the device buffer. The stream remains usable; the next
// Upload recreates the buffer.
func (s *Stream) Release() {
	if s.buffer != nil {
		s.buffer.Release()
		s.buffer = nil
		s.capacity = 0
	}
}
