package instance

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUSpriteInstanceLayout(t *testing.T) {
	g := &GPUSpriteInstance{
		PosScale: [4]float32{1, 2, 3, 4},
		ScaleY:   5,
		Index:    7,
		Flip:     1,
	}
	require.Equal(t, 28, g.Size())

	buf := g.Marshal()
	require.Len(t, buf, 28)

	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[20:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[24:]))
}

func TestGPURectInstanceLayout(t *testing.T) {
	g := &GPURectInstance{
		Rect:         [4]float32{-0.5, 0.25, 1, 0.5},
		Color:        0xFF8800FF,
		Layer:        0.75,
		Radius:       [2]float32{0.1, 0.2},
		OutlineColor: 0x0000FFFF,
	}
	require.Equal(t, 40, g.Size())

	buf := g.Marshal()
	require.Len(t, buf, 40)

	assert.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, uint32(0xFF8800FF), binary.LittleEndian.Uint32(buf[16:]))
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(0.1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
	assert.Equal(t, float32(0.2), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
	assert.Equal(t, uint32(0x0000FFFF), binary.LittleEndian.Uint32(buf[32:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[36:]))
}

func TestAppendToMatchesMarshal(t *testing.T) {
	sprite := &GPUSpriteInstance{PosScale: [4]float32{9, 8, 7, 6}, ScaleY: 2, Index: 3}
	rect := &GPURectInstance{Rect: [4]float32{0, 0, 1, 1}, Color: 0x11223344}

	var buf []byte
	buf = sprite.AppendTo(buf)
	buf = rect.AppendTo(buf)
	require.Len(t, buf, sprite.Size()+rect.Size())

	assert.Equal(t, sprite.Marshal(), buf[:sprite.Size()])
	assert.Equal(t, rect.Marshal(), buf[sprite.Size():])
}
