package imageutil

import (
	"image"
	"image/color"
)

// DefaultThreshold splits 8-bit luminance into ink and paper. Pure black
// and white input (the expected case) converts identically for any
// threshold in (0, 255].
const DefaultThreshold = 128

// ToGrayscale converts any image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B.
// Translucent pixels are composited over white first, so a transparent
// background reads as paper rather than ink.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			// Standard luminance formula (BT.601), integer math
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			a := int(c.A)
			lum = (lum*a + 255*(255-a) + 127) / 255
			gray.Gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// ToBitmap thresholds a grayscale image: pixels darker than threshold
// become foreground.
func ToBitmap(gray *GrayImage, threshold uint8) *Bitmap {
	width, height := gray.Width(), gray.Height()
	bm := NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if gray.GetGray(x, y) < threshold {
				bm.Set(x, y, true)
			}
		}
	}
	return bm
}

// BitmapFromImage converts any decoded image into a Bitmap using
// DefaultThreshold.
func BitmapFromImage(img image.Image) *Bitmap {
	return ToBitmap(ToGrayscale(img), DefaultThreshold)
}
