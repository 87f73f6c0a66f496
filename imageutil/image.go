// Package imageutil provides the image side of the glyph converter:
// decoding, grayscale conversion and 1-bit bitmaps addressable by (x, y).
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// FillRect fills the rectangle r (clipped to the image) with c.
func (img *RGBAImage) FillRect(r image.Rectangle, c RGB) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGB(x, y, c)
		}
	}
}

// GrayImage wraps image.Gray for single-channel images.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// Bitmap is a 1-bit image. A set pixel is foreground (ink), a clear pixel
// is background (paper). The origin is always (0, 0).
//
// Bitmap implements image.Image, rendering foreground as black and
// background as white, so it can be handed to any encoder.
type Bitmap struct {
	width, height int
	pix           []bool
}

// NewBitmap creates an all-background bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}
}

// Width returns the bitmap width.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the bitmap height.
func (b *Bitmap) Height() int {
	return b.height
}

// Bounds returns the bitmap's extent.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Foreground reports whether (x, y) is an ink pixel. Coordinates outside
// the bitmap are background.
func (b *Bitmap) Foreground(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.pix[y*b.width+x]
}

// Set marks (x, y) as foreground or background. Out of range writes are
// ignored.
func (b *Bitmap) Set(x, y int, fg bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = fg
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, p := range b.pix {
		if p {
			n++
		}
	}
	return n
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Foreground(x, y) {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 255}
}
