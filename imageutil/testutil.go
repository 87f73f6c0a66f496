package imageutil

import (
	"image/color"
)

// BitmapFromRows builds a bitmap from text rows: '#' or 'X' is
// foreground, anything else is background. Short rows are padded with
// background up to the widest row.
func BitmapFromRows(rows ...string) *Bitmap {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	bm := NewBitmap(width, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			if r[x] == '#' || r[x] == 'X' {
				bm.Set(x, y, true)
			}
		}
	}
	return bm
}

// CreateCheckerboardBitmap creates a checkerboard pattern bitmap whose
// top-left square is background.
func CreateCheckerboardBitmap(width, height, squareSize int) *Bitmap {
	bm := NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bm.Set(x, y, ((x/squareSize)+(y/squareSize))%2 == 1)
		}
	}
	return bm
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	img.FillRect(img.Bounds(), c)
	return img
}

// BitmapToRGBA draws a bitmap as black ink on white paper.
func BitmapToRGBA(bm *Bitmap) *RGBAImage {
	img := NewRGBAImage(bm.Width(), bm.Height())
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if bm.Foreground(x, y) {
				c = color.RGBA{A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// EqualBitmaps reports whether two bitmaps have the same size and pixels.
func EqualBitmaps(a, b *Bitmap) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			return false
		}
	}
	return true
}
