package img2glyph

import (
	"fmt"
)

// Converter turns a glyph-grid image into a Result. A Converter holds only
// configuration and may be reused; each Convert call starts a fresh
// Allocator.
type Converter struct {
	Geometry Geometry
	// Crop accepts images larger than the grid and scans only the top-left
	// region. Without it such images are rejected.
	Crop bool
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter with the given options applied on top
// of DefaultGeometry.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		Geometry: DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithGeometry replaces the whole geometry.
func WithGeometry(g Geometry) ConverterOption {
	return func(c *Converter) {
		c.Geometry = g
	}
}

// WithGrid sets the grid size in cells.
func WithGrid(rows, cols int) ConverterOption {
	return func(c *Converter) {
		c.Geometry.GridRows = rows
		c.Geometry.GridCols = cols
	}
}

// WithCell sets the cell size in pixels. The glyph height follows the cell
// height unless WithGlyphHeight is applied afterwards.
func WithCell(width, height int) ConverterOption {
	return func(c *Converter) {
		c.Geometry.CellWidth = width
		c.Geometry.CellHeight = height
		c.Geometry.GlyphHeight = height
	}
}

// WithGlyphHeight sets the number of rows per emitted glyph.
func WithGlyphHeight(h int) ConverterOption {
	return func(c *Converter) {
		c.Geometry.GlyphHeight = h
	}
}

// WithStartCodepoint sets the first codepoint handed out.
func WithStartCodepoint(cp int) ConverterOption {
	return func(c *Converter) {
		c.Geometry.StartCodepoint = cp
	}
}

// WithCrop enables or disables scanning oversized images.
func WithCrop(crop bool) ConverterOption {
	return func(c *Converter) {
		c.Crop = crop
	}
}

// Result holds everything a conversion produced.
type Result struct {
	Geometry Geometry
	// CellMap holds, per cell, the first codepoint to print or
	// SpaceCodepoint for an empty cell.
	CellMap [][]Codepoint
	// Packed holds the unique glyphs in order of first appearance.
	Packed  []Glyph
	Preview *PreviewTable
	Stats   Stats
}

// Stats summarises a conversion.
type Stats struct {
	AllocStats
	EmptyCells     int
	StartCodepoint int
	// NextCodepoint is the first codepoint left unused.
	NextCodepoint int
}

// CodepointsUsed returns how many preview slots were handed out.
func (s Stats) CodepointsUsed() int {
	return s.NextCodepoint - s.StartCodepoint
}

// Convert scans src row by row, left to right, and allocates codepoints
// for every non-empty cell. Any error aborts the whole conversion; a
// partial Result is never returned.
func (c *Converter) Convert(src PixelSource) (*Result, error) {
	g := c.Geometry
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkSize(src); err != nil {
		return nil, err
	}
	if g.GlyphHeight != g.CellHeight {
		tracer().Infof("glyph height %d differs from cell height %d; rows will be padded/truncated",
			g.GlyphHeight, g.CellHeight)
	}

	alloc := NewAllocator(g.StartCodepoint, g.GlyphHeight)
	cellMap := make([][]Codepoint, g.GridRows)
	empty := 0
	for row := 0; row < g.GridRows; row++ {
		cellMap[row] = make([]Codepoint, g.GridCols)
		for col := 0; col < g.GridCols; col++ {
			if CellIsEmpty(src, g, row, col) {
				cellMap[row][col] = SpaceCodepoint
				empty++
				continue
			}
			cp, err := alloc.Place(CellSlices(src, g, row, col))
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", row, col, err)
			}
			tracer().Debugf("cell (%d,%d) -> 0x%02X", row, col, cp)
			cellMap[row][col] = cp
		}
	}

	r := &Result{
		Geometry: g,
		CellMap:  cellMap,
		Packed:   alloc.Packed(),
		Preview:  alloc.Preview(),
		Stats: Stats{
			AllocStats:     alloc.Stats(),
			EmptyCells:     empty,
			StartCodepoint: g.StartCodepoint,
			NextCodepoint:  alloc.Next(),
		},
	}
	tracer().Infof("grid %dx%d, unique glyphs %d, preview start CP 0x%02X, next free 0x%02X",
		g.GridCols, g.GridRows, len(r.Packed), g.StartCodepoint, alloc.Next())
	return r, nil
}

// checkSize compares the image with the grid.
func (c *Converter) checkSize(src PixelSource) error {
	needW, needH := c.Geometry.ImageSize()
	b := src.Bounds()
	if b.Dx() < needW || b.Dy() < needH {
		return fmt.Errorf("%w: got %dx%d, need %dx%d",
			ErrInputTooSmall, b.Dx(), b.Dy(), needW, needH)
	}
	if !c.Crop && (b.Dx() > needW || b.Dy() > needH) {
		return fmt.Errorf("%w: got %dx%d, need %dx%d",
			ErrInputTooLarge, b.Dx(), b.Dy(), needW, needH)
	}
	return nil
}
