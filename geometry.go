package img2glyph

import (
	"fmt"
)

const (
	// SliceWidth is the pixel width of one glyph slice; a row of a slice
	// packs into exactly one byte.
	SliceWidth = 8

	// DefaultGridRows and DefaultGridCols define the logo grid the
	// firmware draws.
	DefaultGridRows = 3
	DefaultGridCols = 17

	// DefaultCellWidth and DefaultCellHeight define the VGA text cell.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	// DefaultStartCodepoint is the first preview slot handed out.
	DefaultStartCodepoint = 0xC0
)

// Geometry describes the character grid of the source image and the shape
// of the glyphs produced from it.
type Geometry struct {
	GridRows   int
	GridCols   int
	CellWidth  int
	CellHeight int
	// GlyphHeight is the number of rows per emitted glyph. Cells taller
	// than this are truncated, shorter ones padded with blank rows.
	GlyphHeight    int
	StartCodepoint int
}

// DefaultGeometry returns the 17x3 grid of 8x16 cells the boot logo uses.
func DefaultGeometry() Geometry {
	return Geometry{
		GridRows:       DefaultGridRows,
		GridCols:       DefaultGridCols,
		CellWidth:      DefaultCellWidth,
		CellHeight:     DefaultCellHeight,
		GlyphHeight:    DefaultCellHeight,
		StartCodepoint: DefaultStartCodepoint,
	}
}

// Validate reports an ErrUsage-wrapped error if g cannot drive a
// conversion.
func (g Geometry) Validate() error {
	switch {
	case g.GridRows <= 0 || g.GridCols <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d",
			ErrUsage, g.GridCols, g.GridRows)
	case g.CellWidth <= 0 || g.CellHeight <= 0:
		return fmt.Errorf("%w: cell must be at least 1x1, got %dx%d",
			ErrUsage, g.CellWidth, g.CellHeight)
	case g.GlyphHeight <= 0:
		return fmt.Errorf("%w: glyph height must be positive, got %d",
			ErrUsage, g.GlyphHeight)
	case g.StartCodepoint < 0 || g.StartCodepoint >= CodepointLimit:
		return fmt.Errorf("%w: start codepoint 0x%X outside [0x00, 0xFF]",
			ErrUsage, g.StartCodepoint)
	}
	return nil
}

// SliceCount returns how many 8 pixel slices make up one cell.
func (g Geometry) SliceCount() int {
	return (g.CellWidth + SliceWidth - 1) / SliceWidth
}

// ImageSize returns the pixel dimensions the source image must have.
func (g Geometry) ImageSize() (width, height int) {
	return g.GridCols * g.CellWidth, g.GridRows * g.CellHeight
}
