package instance

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// UVRect is a normalized texture-space rectangle with Min at the top-left
// sample corner and Max at the bottom-right.
type UVRect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// Lerp maps a unit UV coordinate into the rectangle.
//
// Parameters:
//   - u: horizontal unit coordinate in [0, 1]
//   - v: vertical unit coordinate in [0, 1]
//
// Returns:
//   - mgl32.Vec2: the interpolated texture-space coordinate
func (r UVRect) Lerp(u, v float32) mgl32.Vec2 {
	return mgl32.Vec2{
		r.Min.X() + u*(r.Max.X()-r.Min.X()),
		r.Min.Y() + v*(r.Max.Y()-r.Min.Y()),
	}
}

// SpriteSheet describes how a flat sprite index addresses cells of a texture
// atlas. Cells are laid out row-major, zero-based, NumCols cells per row, each
// cell BoxSize pixels with Padding pixels inset on every edge to avoid
// bleeding from adjacent cells under bilinear filtering.
type SpriteSheet struct {
	// Padding is the per-cell inset in pixels applied on every edge.
	Padding mgl32.Vec2
	// BoxSize is the extent of one cell in pixels, padding included.
	BoxSize mgl32.Vec2
	// ImageSize is the extent of the whole atlas in pixels.
	ImageSize mgl32.Vec2
	// NumCols is the number of cells per row. Must be positive before any
	// index is dereferenced.
	NumCols uint32
}

// NumRows returns the number of cell rows the atlas holds.
//
// Returns:
//   - uint32: the row count, zero when BoxSize has a zero vertical extent
func (s *SpriteSheet) NumRows() uint32 {
	if s.BoxSize.Y() <= 0 {
		return 0
	}
	return uint32(math32.Floor(s.ImageSize.Y() / s.BoxSize.Y()))
}

// Address maps a flat sprite index to the normalized UV rectangle of its
// padded sample region. The cell is located at row = index / NumCols,
// col = index % NumCols; the sample region is the cell inset by Padding on
// every edge, normalized by ImageSize. When flip is true the returned
// rectangle has its horizontal extents swapped so a unit U coordinate samples
// the cell mirrored.
//
// Parameters:
//   - index: the flat, zero-based cell index
//   - flip: whether to mirror the cell horizontally
//
// Returns:
//   - UVRect: the normalized sample rectangle
//   - error: an error when NumCols is zero or index addresses a row beyond
//     the atlas bounds
func (s *SpriteSheet) Address(index uint32, flip bool) (UVRect, error) {
	if s.NumCols == 0 {
		return UVRect{}, fmt.Errorf("sprite sheet has zero columns")
	}
	row := index / s.NumCols
	col := index % s.NumCols
	if rows := s.NumRows(); row >= rows {
		return UVRect{}, fmt.Errorf("sprite index %d addresses row %d of a %d-row sheet", index, row, rows)
	}

	origin := mgl32.Vec2{
		s.BoxSize.X() * float32(col),
		s.BoxSize.Y() * float32(row),
	}
	minPx := origin.Add(s.Padding)
	maxPx := origin.Add(s.BoxSize).Sub(s.Padding)

	r := UVRect{
		Min: mgl32.Vec2{minPx.X() / s.ImageSize.X(), minPx.Y() / s.ImageSize.Y()},
		Max: mgl32.Vec2{maxPx.X() / s.ImageSize.X(), maxPx.Y() / s.ImageSize.Y()},
	}
	if flip {
		r.Min[0], r.Max[0] = r.Max[0], r.Min[0]
	}
	return r, nil
}

// Contains reports whether index addresses a cell inside the atlas bounds.
//
// Parameters:
//   - index: the flat, zero-based cell index
//
// Returns:
//   - bool: true when the index is addressable
func (s *SpriteSheet) Contains(index uint32) bool {
	if s.NumCols == 0 {
		return false
	}
	return index/s.NumCols < s.NumRows()
}

// GPU returns the uniform-buffer representation of the sheet.
//
// Returns:
//   - GPUSpriteSheet: the GPU-aligned sheet description
func (s *SpriteSheet) GPU() GPUSpriteSheet {
	return GPUSpriteSheet{
		Padding:   [2]float32{s.Padding.X(), s.Padding.Y()},
		BoxSize:   [2]float32{s.BoxSize.X(), s.BoxSize.Y()},
		ImageSize: [2]float32{s.ImageSize.X(), s.ImageSize.Y()},
		NumCols:   s.NumCols,
	}
}
