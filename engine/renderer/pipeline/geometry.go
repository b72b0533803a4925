package pipeline

import (
	"encoding/binary"
	"math"
)

// QuadVertexStride is the byte stride of one quad vertex: position vec2 plus
// UV vec2.
const QuadVertexStride = 16

// quadVertices is the unit quad shared by every instance of every kind,
// centered on the origin: x, y, u, v per vertex. V grows downward so UV
// (0,0) is the top-left corner.
var quadVertices = [16]float32{
	-0.5, 0.5, 0, 0,
	0.5, 0.5, 1, 0,
	0.5, -0.5, 1, 1,
	-0.5, -0.5, 0, 1,
}

// quadIndices winds the quad as two counter-clockwise triangles.
var quadIndices = [6]uint16{3, 2, 1, 3, 1, 0}

// QuadVertexBytes serializes the unit quad vertex data for GPU upload.
//
// Returns:
//   - []byte: the little-endian vertex bytes, 4 vertices of 16 bytes
func QuadVertexBytes() []byte {
	buf := make([]byte, 0, len(quadVertices)*4)
	for _, v := range quadVertices {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// QuadIndexBytes serializes the unit quad index data for GPU upload.
//
// Returns:
//   - []byte: the little-endian uint16 index bytes
func QuadIndexBytes() []byte {
	buf := make([]byte, 0, len(quadIndices)*2)
	for _, i := range quadIndices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf
}

// QuadIndexCount is the number of indices drawn per instance.
const QuadIndexCount = 6
