package img2glyph

import (
	"fmt"

	"github.com/wbrown/img2glyph/imageutil"
)

// Reconstruct draws the grid the way the firmware does: every non-empty
// cell prints SliceCount consecutive codepoints starting at its cell map
// entry, each taken from the preview table.
func Reconstruct(r *Result) *imageutil.Bitmap {
	g := r.Geometry
	width, height := g.ImageSize()
	bm := imageutil.NewBitmap(width, height)
	rows := g.CellHeight
	if g.GlyphHeight < rows {
		rows = g.GlyphHeight
	}

	for row, cps := range r.CellMap {
		for col, cp := range cps {
			if cp == SpaceCodepoint {
				continue
			}
			left, top := col*g.CellWidth, row*g.CellHeight
			for s := 0; s < g.SliceCount(); s++ {
				c := int(cp) + s
				if c >= CodepointLimit {
					break
				}
				glyph := r.Preview.Slot(Codepoint(c))
				for y := 0; y < rows; y++ {
					for bit := 0; bit < SliceWidth; bit++ {
						x := s*SliceWidth + bit
						if x >= g.CellWidth {
							break
						}
						if glyph[y]&(1<<(7-bit)) != 0 {
							bm.Set(left+x, top+y, true)
						}
					}
				}
			}
		}
	}
	return bm
}

// Verify checks that printing the cell map through the preview table
// reproduces every cell of src. Cell rows past GlyphHeight are not
// compared.
func Verify(src PixelSource, r *Result) error {
	g := r.Geometry
	for row := 0; row < g.GridRows; row++ {
		for col := 0; col < g.GridCols; col++ {
			cp := r.CellMap[row][col]
			if cp == SpaceCodepoint {
				if !CellIsEmpty(src, g, row, col) {
					return fmt.Errorf("%w: cell (%d,%d) has ink but maps to space",
						ErrMismatch, row, col)
				}
				continue
			}
			for s, want := range CellSlices(src, g, row, col) {
				c := int(cp) + s
				if c >= CodepointLimit {
					return fmt.Errorf("%w: cell (%d,%d) slice %d runs past codepoint 0xFF",
						ErrMismatch, row, col, s)
				}
				if got := r.Preview.Slot(Codepoint(c)); !got.Equal(want) {
					return fmt.Errorf("%w: cell (%d,%d) slice %d: slot 0x%02X holds %s, want %s",
						ErrMismatch, row, col, s, c, got, want)
				}
			}
		}
	}
	return nil
}
