package img2glyph

import (
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/wbrown/img2glyph/imageutil"
)

func TestRenderPreviewSheet(t *testing.T) {
	table := NewPreviewTable(2)
	table.Set(0xC0, Glyph{0x80, 0x00})

	const scale = 2
	img := RenderPreviewSheet(table, SheetOptions{Scale: scale, First: 0xC0, Next: 0xC1})

	face := basicfont.Face7x13
	m := face.Metrics()
	labelH := m.Ascent.Ceil() + m.Descent.Ceil() + 2
	pitchX := max(SliceWidth*scale, font.MeasureString(face, "FF").Ceil()) + 4
	pitchY := labelH + 2*scale + 4

	if w := img.Bounds().Dx(); w != 16*pitchX+4 {
		t.Errorf("Sheet width %d, want %d", w, 16*pitchX+4)
	}
	if h := img.Bounds().Dy(); h != 16*pitchY+4 {
		t.Errorf("Sheet height %d, want %d", h, 16*pitchY+4)
	}

	// Slot 0xC0 sits at column 0, row 12.
	x, y := 4, 4+12*pitchY+labelH
	if c := img.RGBAAt(x, y); c != sheetInk.ToColor() {
		t.Errorf("Expected ink at slot 0xC0 pixel (0,0), got %v", c)
	}
	if c := img.RGBAAt(x+scale, y); c != sheetUsedBG.ToColor() {
		t.Errorf("Expected used background next to ink, got %v", c)
	}
	// Slot 0x00 is blank and unused.
	if c := img.RGBAAt(4, 4+labelH); c != sheetSlotBG.ToColor() {
		t.Errorf("Expected unused background at slot 0x00, got %v", c)
	}
}

func TestPreviewSheetSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	img := RenderPreviewSheet(NewPreviewTable(16), SheetOptions{})
	if err := imageutil.SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	loaded, err := imageutil.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if loaded.Bounds() != img.Bounds() {
		t.Errorf("Loaded bounds %v, want %v", loaded.Bounds(), img.Bounds())
	}
}

func TestLoadLabelFaceMissing(t *testing.T) {
	if _, err := LoadLabelFace(filepath.Join(t.TempDir(), "none.ttf"), 12); err == nil {
		t.Error("Expected error for missing font")
	}
}
