package img2glyph

import (
	"image"
)

// PixelSource is a read-only 1-bit image. imageutil.Bitmap implements it.
type PixelSource interface {
	Bounds() image.Rectangle
	// Foreground reports whether the pixel at (x, y) is ink.
	Foreground(x, y int) bool
}

// cellOrigin returns the top-left pixel of cell (row, col).
func cellOrigin(src PixelSource, g Geometry, row, col int) (left, top int) {
	o := src.Bounds().Min
	return o.X + col*g.CellWidth, o.Y + row*g.CellHeight
}

// CellIsEmpty reports whether every pixel of cell (row, col) is background.
func CellIsEmpty(src PixelSource, g Geometry, row, col int) bool {
	left, top := cellOrigin(src, g, row, col)
	for y := top; y < top+g.CellHeight; y++ {
		for x := left; x < left+g.CellWidth; x++ {
			if src.Foreground(x, y) {
				return false
			}
		}
	}
	return true
}

// CellSlices cuts cell (row, col) into SliceCount glyphs, left to right.
// Columns past the cell's right edge read as background. Each glyph has
// exactly GlyphHeight rows: extra cell rows are dropped, missing ones are
// zero.
func CellSlices(src PixelSource, g Geometry, row, col int) []Glyph {
	left, top := cellOrigin(src, g, row, col)
	n := g.SliceCount()
	rows := g.CellHeight
	if g.GlyphHeight < rows {
		rows = g.GlyphHeight
	}

	slices := make([]Glyph, n)
	for s := 0; s < n; s++ {
		glyph := make(Glyph, g.GlyphHeight)
		sliceLeft := left + s*SliceWidth
		for y := 0; y < rows; y++ {
			glyph[y] = packRow(src, sliceLeft, left+g.CellWidth, top+y)
		}
		slices[s] = glyph
	}
	return slices
}

// packRow packs the 8 pixels starting at (x, y) into a byte, MSB first.
// Pixels at or beyond limit are background.
func packRow(src PixelSource, x, limit, y int) byte {
	var b byte
	for bit := 0; bit < SliceWidth; bit++ {
		xx := x + bit
		if xx < limit && src.Foreground(xx, y) {
			b |= 1 << (7 - bit)
		}
	}
	return b
}
