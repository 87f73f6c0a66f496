package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleNearest enlarges img by an integer factor using nearest-neighbor
// interpolation, which keeps pixel-art edges hard.
func ScaleNearest(img image.Image, factor int) *RGBAImage {
	if factor < 1 {
		factor = 1
	}
	src := img.Bounds()
	width, height := src.Dx()*factor, src.Dy()*factor
	dst := NewRGBAImage(width, height)
	draw.NearestNeighbor.Scale(dst.RGBA, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
