package img2glyph

import (
	"errors"
	"testing"

	"github.com/wbrown/img2glyph/imageutil"
)

func TestReconstructRoundTrip(t *testing.T) {
	bm := imageutil.BitmapFromRows(
		"##..##....##########......##....",
		"#....#....#........#.....#..#...",
		"#....#....#..####..#....#....#..",
		"######....##########...########.",
	)
	tests := []struct {
		name  string
		cellW int
	}{
		{"single slice", 8},
		{"two slices", 16},
		{"partial slice", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := bm.Width() / tt.cellW
			src := imageutil.NewBitmap(cols*tt.cellW, bm.Height())
			for y := 0; y < src.Height(); y++ {
				for x := 0; x < src.Width(); x++ {
					src.Set(x, y, bm.Foreground(x, y))
				}
			}

			r, err := NewConverter(WithGrid(1, cols), WithCell(tt.cellW, 4)).Convert(src)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if err := Verify(src, r); err != nil {
				t.Errorf("Verify failed: %v", err)
			}
			if got := Reconstruct(r); !imageutil.EqualBitmaps(got, src) {
				t.Error("Reconstruction differs from source")
			}
		})
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	bm, conv := scatteredGrid()
	r, err := conv.Convert(bm)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	// Point the second cell at the unrelated glyph X.
	r.CellMap[0][1] = 0xC1
	if err := Verify(bm, r); !errors.Is(err, ErrMismatch) {
		t.Errorf("Expected ErrMismatch, got %v", err)
	}

	r.CellMap[0][1] = SpaceCodepoint
	if err := Verify(bm, r); !errors.Is(err, ErrMismatch) {
		t.Errorf("Expected ErrMismatch for inked space cell, got %v", err)
	}
}
