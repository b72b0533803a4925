package pipeline

// Kind identifies one of the fixed draw pipelines. The set is closed: batch
// keys compare kinds as plain integers and the dispatch table in Describe is
// exhaustive over it.
type Kind uint8

const (
	// KindSprite draws world-space sprites addressed through a sprite sheet.
	KindSprite Kind = iota
	// KindUIRect draws screen-space rectangles with optional rounded corners
	// and outlines.
	KindUIRect
	// KindGlyph draws screen-space text glyphs; it shares the rect instance
	// layout with a vertically flipped UV convention.
	KindGlyph

	kindCount
)

// Valid reports whether k names a known pipeline kind.
//
// Returns:
//   - bool: true for the closed set of kinds, false for anything else
func (k Kind) Valid() bool {
	return k < kindCount
}

// Priority is the fixed cross-kind draw order used to break ties between
// batches sharing a layer bucket: world sprites first, then UI rectangles,
// then text on top.
//
// Returns:
//   - int: the ordering rank, lower draws first
func (k Kind) Priority() int {
	return int(k)
}

// String returns the pipeline key for the kind, also used as its cache key
// and debug label.
func (k Kind) String() string {
	switch k {
	case KindSprite:
		return "sprite"
	case KindUIRect:
		return "ui_rect"
	case KindGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}
