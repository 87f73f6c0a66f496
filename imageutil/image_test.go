package imageutil

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestFillRectClips(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{})
	img.FillRect(image.Rect(2, 2, 10, 10), RGB{R: 255})
	if img.GetRGB(3, 3).R != 255 {
		t.Error("Expected (3,3) to be filled")
	}
	if img.GetRGB(1, 1).R != 0 {
		t.Error("Expected (1,1) to be untouched")
	}
}

func TestToGrayscale(t *testing.T) {
	img := NewRGBAImage(1, 1)
	img.SetRGB(0, 0, RGB{R: 255, G: 255, B: 255})

	gray := ToGrayscale(img)
	v := gray.GetGray(0, 0)

	// White should produce white (255)
	if v != 255 {
		t.Errorf("White pixel should convert to 255, got %d", v)
	}

	// Test black
	img.SetRGB(0, 0, RGB{R: 0, G: 0, B: 0})
	gray = ToGrayscale(img)
	if v = gray.GetGray(0, 0); v != 0 {
		t.Errorf("Black pixel should convert to 0, got %d", v)
	}

	// Test red (0.299 * 255 = 76.245)
	img.SetRGB(0, 0, RGB{R: 255, G: 0, B: 0})
	gray = ToGrayscale(img)
	if v = gray.GetGray(0, 0); v < 75 || v > 77 {
		t.Errorf("Red pixel should convert to ~76, got %d", v)
	}

	// Fully transparent reads as paper
	img.SetRGBA(0, 0, color.RGBA{})
	gray = ToGrayscale(img)
	if v = gray.GetGray(0, 0); v != 255 {
		t.Errorf("Transparent pixel should convert to 255, got %d", v)
	}
}

func TestToBitmapThreshold(t *testing.T) {
	gray := NewGrayImage(3, 1)
	gray.SetGray(0, 0, color.Gray{Y: 0})
	gray.SetGray(1, 0, color.Gray{Y: 127})
	gray.SetGray(2, 0, color.Gray{Y: 128})

	bm := ToBitmap(gray, DefaultThreshold)
	want := []bool{true, true, false}
	for x, w := range want {
		if bm.Foreground(x, 0) != w {
			t.Errorf("Pixel %d: expected foreground=%v", x, w)
		}
	}
}

func TestBitmap(t *testing.T) {
	bm := BitmapFromRows(
		"#..",
		".#",
	)
	if bm.Width() != 3 || bm.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", bm.Width(), bm.Height())
	}
	if !bm.Foreground(0, 0) || !bm.Foreground(1, 1) || bm.Foreground(2, 1) {
		t.Error("Unexpected pixels")
	}
	if bm.Foreground(-1, 0) || bm.Foreground(3, 0) {
		t.Error("Out of bounds pixels should be background")
	}
	if bm.Count() != 2 {
		t.Errorf("Expected 2 foreground pixels, got %d", bm.Count())
	}
	if bm.At(0, 0) != (color.Gray{Y: 0}) || bm.At(1, 0) != (color.Gray{Y: 255}) {
		t.Error("Foreground should render black, background white")
	}

	bm.Set(5, 5, true) // ignored
	if bm.Count() != 2 {
		t.Error("Out of bounds Set should be ignored")
	}
}

func TestCheckerboardBitmap(t *testing.T) {
	bm := CreateCheckerboardBitmap(4, 4, 2)
	if bm.Foreground(0, 0) || !bm.Foreground(2, 0) || !bm.Foreground(0, 2) || bm.Foreground(3, 3) {
		t.Error("Unexpected checkerboard layout")
	}
}

func TestSaveAndLoadBitmap(t *testing.T) {
	dir := t.TempDir()
	src := CreateCheckerboardBitmap(16, 8, 4)

	path := filepath.Join(dir, "grid.png")
	if err := SavePNG(src, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	loaded, err := LoadBitmap(path)
	if err != nil {
		t.Fatalf("LoadBitmap failed: %v", err)
	}
	if !EqualBitmaps(src, loaded) {
		t.Error("PNG round trip changed pixels")
	}

	// BMP input goes through the x/image decoder
	bmpPath := filepath.Join(dir, "grid.bmp")
	f, err := os.Create(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, BitmapToRGBA(src)); err != nil {
		t.Fatal(err)
	}
	f.Close()
	loaded, err = LoadBitmap(bmpPath)
	if err != nil {
		t.Fatalf("LoadBitmap(bmp) failed: %v", err)
	}
	if !EqualBitmaps(src, loaded) {
		t.Error("BMP round trip changed pixels")
	}
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadImageGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error")
	}
}

func TestScaleNearest(t *testing.T) {
	bm := BitmapFromRows("#.", ".#")
	scaled := ScaleNearest(bm, 3)
	if scaled.Width() != 6 || scaled.Height() != 6 {
		t.Fatalf("Expected 6x6, got %dx%d", scaled.Width(), scaled.Height())
	}
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}
	if scaled.GetRGB(2, 2) != black || scaled.GetRGB(3, 2) != white || scaled.GetRGB(5, 5) != black {
		t.Error("Nearest-neighbor scaling should keep hard pixel blocks")
	}
}

func TestBitmapFromImageDoesNotDither(t *testing.T) {
	// A flat mid-gray area must come out solid, never as a dot pattern.
	dark := CreateSolidImage(8, 8, RGB{R: 100, G: 100, B: 100})
	if n := BitmapFromImage(dark).Count(); n != 64 {
		t.Errorf("Dark gray: expected 64 ink pixels, got %d", n)
	}
	light := CreateSolidImage(8, 8, RGB{R: 160, G: 160, B: 160})
	if n := BitmapFromImage(light).Count(); n != 0 {
		t.Errorf("Light gray: expected 0 ink pixels, got %d", n)
	}
}

func TestEncodePNG(t *testing.T) {
	src := CreateCheckerboardBitmap(8, 8, 2)
	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "enc.png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadBitmap(path)
	if err != nil {
		t.Fatalf("LoadBitmap failed: %v", err)
	}
	if !EqualBitmaps(src, loaded) {
		t.Error("Encoded PNG does not decode to the source bitmap")
	}
}
