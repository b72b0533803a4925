// package instance holds the fixed-layout per-entity records that are written
// into instance buffers each frame, together with the sprite-sheet addressing
// math the shader stage reproduces. The byte layouts here are external
// contracts: field order and packing must match the pipeline vertex-attribute
// tables bit-for-bit.
package instance

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSpriteSheetSource is the canonical WGSL definition of the SpriteSheet
// uniform struct. Matches GPUSpriteSheet layout exactly (32 bytes).
//
//go:embed assets/sprite_sheet_uniform.wgsl
var GPUSpriteSheetSource string

// Record is the common surface of the per-instance GPU types. Size reports
// the fixed byte stride and AppendTo serializes the record onto buf without
// intermediate allocation.
type Record interface {
	Size() int
	AppendTo(buf []byte) []byte
}

// GPUSpriteInstance is the per-sprite instance record.
// Size: 28 bytes, tightly packed.
type GPUSpriteInstance struct {
	PosScale [4]float32 // offset  0: world x, y, z and horizontal scale
	ScaleY   float32    // offset 16: vertical scale
	Index    uint32     // offset 20: flat sprite-sheet cell index
	Flip     uint32     // offset 24: non-zero mirrors the sprite horizontally
}

// Size returns the size of the GPUSpriteInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (28)
func (g *GPUSpriteInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUSpriteInstance) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, g.Size()))
}

// AppendTo appends the serialized record to buf and returns the extended slice.
//
// Parameters:
//   - buf: the destination buffer, may be nil
//
// Returns:
//   - []byte: buf with the 28 serialized bytes appended
func (g *GPUSpriteInstance) AppendTo(buf []byte) []byte {
	for i := range 4 {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.PosScale[i]))
	}
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.ScaleY))
	buf = binary.LittleEndian.AppendUint32(buf, g.Index)
	buf = binary.LittleEndian.AppendUint32(buf, g.Flip)
	return buf
}

// GPURectInstance is the per-rectangle instance record shared by the UI-rect
// and glyph pipelines. Rect is expressed in normalized device coordinates.
// Size: 40 bytes, tightly packed.
type GPURectInstance struct {
	Rect         [4]float32 // offset  0: x, y, w, h in normalized device space
	Color        uint32     // offset 16: packed fill color, 0xRRGGBBAA
	Layer        float32    // offset 20: clip z in [0, 1], higher layers map lower
	Radius       [2]float32 // offset 24: corner radius in local UV units
	OutlineColor uint32     // offset 32: packed outline color, 0xRRGGBBAA
	_pad         uint32     // offset 36: padding to 40 bytes
}

// Size returns the size of the GPURectInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (40)
func (g *GPURectInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPURectInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPURectInstance) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, g.Size()))
}

// AppendTo appends the serialized record to buf and returns the extended slice.
//
// Parameters:
//   - buf: the destination buffer, may be nil
//
// Returns:
//   - []byte: buf with the 40 serialized bytes appended
func (g *GPURectInstance) AppendTo(buf []byte) []byte {
	for i := range 4 {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Rect[i]))
	}
	buf = binary.LittleEndian.AppendUint32(buf, g.Color)
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Layer))
	for i := range 2 {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Radius[i]))
	}
	buf = binary.LittleEndian.AppendUint32(buf, g.OutlineColor)
	buf = binary.LittleEndian.AppendUint32(buf, 0) // _pad
	return buf
}

// GPUSpriteSheet is the GPU-aligned representation of the sprite-sheet uniform
// buffer. Matches the WGSL SpriteSheet struct layout exactly (see
// GPUSpriteSheetSource). Size: 32 bytes.
type GPUSpriteSheet struct {
	Padding   [2]float32 // offset  0: per-cell padding in pixels
	BoxSize   [2]float32 // offset  8: cell extent in pixels
	ImageSize [2]float32 // offset 16: atlas extent in pixels
	NumCols   uint32     // offset 24: cells per row
	_pad      uint32     // offset 28: padding to 32 bytes
}

// sheetTailPad is written into the uniform's trailing padding word so that a
// corrupted upload is recognizable in a buffer capture.
const sheetTailPad = 0xDEADBEEF

// Size returns the size of the GPUSpriteSheet struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUSpriteSheet) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteSheet struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUSpriteSheet) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Padding[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Padding[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.BoxSize[0]))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.BoxSize[1]))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.ImageSize[0]))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.ImageSize[1]))
	binary.LittleEndian.PutUint32(buf[24:], g.NumCols)
	binary.LittleEndian.PutUint32(buf[28:], sheetTailPad)
	return buf
}
