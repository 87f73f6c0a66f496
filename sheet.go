package img2glyph

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wbrown/img2glyph/imageutil"
)

// sheetColumns is the number of slots per sheet row; 16x16 covers all
// codepoints with the high nibble down and the low nibble across.
const sheetColumns = 16

var (
	sheetPaper     = imageutil.RGB{R: 255, G: 255, B: 255}
	sheetSlotBG    = imageutil.RGB{R: 232, G: 232, B: 232}
	sheetUsedBG    = imageutil.RGB{R: 255, G: 236, B: 160}
	sheetInk       = imageutil.RGB{R: 0, G: 0, B: 0}
	sheetLabelInk  = imageutil.RGB{R: 96, G: 96, B: 96}
	sheetLabelUsed = imageutil.RGB{R: 160, G: 64, B: 0}
)

// SheetOptions controls RenderPreviewSheet.
type SheetOptions struct {
	// Scale enlarges every glyph pixel to Scale x Scale.
	Scale int
	// Face draws the hex labels; nil selects basicfont.Face7x13.
	Face font.Face
	// Slots in [First, Next) are highlighted as allocated.
	First, Next int
}

// LoadLabelFace loads a TrueType font for sheet labels at the given point
// size.
func LoadLabelFace(path string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderPreviewSheet draws all 256 preview slots on a 16x16 sheet, each
// slot labelled with its codepoint in hex.
func RenderPreviewSheet(t *PreviewTable, opts SheetOptions) *image.RGBA {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	face := opts.Face
	if face == nil {
		face = basicfont.Face7x13
	}

	const pad = 4
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	labelH := ascent + metrics.Descent.Ceil() + 2
	labelW := font.MeasureString(face, "FF").Ceil()
	glyphW, glyphH := SliceWidth*scale, t.GlyphHeight()*scale
	pitchX := max(glyphW, labelW) + pad
	pitchY := labelH + glyphH + pad

	img := imageutil.NewRGBAImage(sheetColumns*pitchX+pad, (CodepointLimit/sheetColumns)*pitchY+pad)
	img.FillRect(img.Bounds(), sheetPaper)

	for c := 0; c < CodepointLimit; c++ {
		x := pad + (c%sheetColumns)*pitchX
		y := pad + (c/sheetColumns)*pitchY
		used := c >= opts.First && c < opts.Next

		labelInk, bg := sheetLabelInk, sheetSlotBG
		if used {
			labelInk, bg = sheetLabelUsed, sheetUsedBG
		}
		d := &font.Drawer{
			Dst:  img.RGBA,
			Src:  image.NewUniform(labelInk.ToColor()),
			Face: face,
			Dot:  fixed.P(x, y+ascent),
		}
		d.DrawString(fmt.Sprintf("%02X", c))

		renderGlyph(img, t.Slot(Codepoint(c)), x, y+labelH, scale, sheetInk, bg)
	}
	return img.RGBA
}

// renderGlyph draws a glyph at the given position with scaling.
func renderGlyph(img *imageutil.RGBAImage, g Glyph, startX, startY, scale int, fg, bg imageutil.RGB) {
	for y, row := range g {
		for x := 0; x < SliceWidth; x++ {
			c := bg
			if row&(1<<(7-x)) != 0 {
				c = fg
			}
			img.FillRect(image.Rect(
				startX+x*scale, startY+y*scale,
				startX+(x+1)*scale, startY+(y+1)*scale), c)
		}
	}
}
