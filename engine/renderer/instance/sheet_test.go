package instance

import (
	"encoding/binary"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet() *SpriteSheet {
	return &SpriteSheet{
		Padding:   mgl32.Vec2{1, 1},
		BoxSize:   mgl32.Vec2{32, 32},
		ImageSize: mgl32.Vec2{128, 64},
		NumCols:   4,
	}
}

func TestSheetAddressRowMajor(t *testing.T) {
	s := testSheet()

	// Index 0 is the top-left cell.
	r, err := s.Address(0, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/128.0, r.Min.X(), 1e-6)
	assert.InDelta(t, 1.0/64.0, r.Min.Y(), 1e-6)
	assert.InDelta(t, 31.0/128.0, r.Max.X(), 1e-6)
	assert.InDelta(t, 31.0/64.0, r.Max.Y(), 1e-6)

	// Index 5 is row 1, col 1.
	r, err = s.Address(5, false)
	require.NoError(t, err)
	assert.InDelta(t, 33.0/128.0, r.Min.X(), 1e-6)
	assert.InDelta(t, 33.0/64.0, r.Min.Y(), 1e-6)
}

func TestSheetAddressFlip(t *testing.T) {
	s := testSheet()

	plain, err := s.Address(2, false)
	require.NoError(t, err)
	flipped, err := s.Address(2, true)
	require.NoError(t, err)

	assert.Equal(t, plain.Min.X(), flipped.Max.X())
	assert.Equal(t, plain.Max.X(), flipped.Min.X())
	assert.Equal(t, plain.Min.Y(), flipped.Min.Y())
	assert.Equal(t, plain.Max.Y(), flipped.Max.Y())

	// A unit U of 0 on the flipped rect samples where U of 1 would have.
	assert.Equal(t, plain.Lerp(1, 0), flipped.Lerp(0, 0))
}

func TestSheetAddressContainedAndDisjoint(t *testing.T) {
	s := testSheet()
	total := s.NumCols * s.NumRows()
	require.Equal(t, uint32(8), total)

	rects := make([]UVRect, 0, total)
	for i := uint32(0); i < total; i++ {
		r, err := s.Address(i, false)
		require.NoError(t, err, "index %d", i)

		// Fully contained in the unit square.
		assert.GreaterOrEqual(t, r.Min.X(), float32(0))
		assert.GreaterOrEqual(t, r.Min.Y(), float32(0))
		assert.LessOrEqual(t, r.Max.X(), float32(1))
		assert.LessOrEqual(t, r.Max.Y(), float32(1))
		assert.Less(t, r.Min.X(), r.Max.X())
		assert.Less(t, r.Min.Y(), r.Max.Y())

		rects = append(rects, r)
	}

	// Pairwise disjoint.
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			overlap := a.Min.X() < b.Max.X() && b.Min.X() < a.Max.X() &&
				a.Min.Y() < b.Max.Y() && b.Min.Y() < a.Max.Y()
			assert.False(t, overlap, "cells %d and %d overlap", i, j)
		}
	}
}

func TestSheetAddressErrors(t *testing.T) {
	s := testSheet()

	_, err := s.Address(8, false)
	assert.Error(t, err, "row beyond sheet bounds")

	zero := &SpriteSheet{}
	_, err = zero.Address(0, false)
	assert.Error(t, err, "zero columns must not panic")
}

func TestSheetContains(t *testing.T) {
	s := testSheet()
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.False(t, (&SpriteSheet{}).Contains(0))
}

func TestSheetGPUMarshal(t *testing.T) {
	s := testSheet()
	g := s.GPU()

	require.Equal(t, 32, g.Size())
	buf := g.Marshal()
	require.Len(t, buf, 32)

	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(buf[24:]))
	assert.Equal(t, uint32(sheetTailPad), binary.LittleEndian.Uint32(buf[28:]))
}
