package img2glyph

// PreviewTable holds one glyph per codepoint, 256 slots in total. Every slot
// starts blank. The same bitmap may sit in several slots.
type PreviewTable struct {
	glyphHeight int
	data        []byte
}

// NewPreviewTable creates a blank table whose slots are glyphHeight bytes.
func NewPreviewTable(glyphHeight int) *PreviewTable {
	return &PreviewTable{
		glyphHeight: glyphHeight,
		data:        make([]byte, CodepointLimit*glyphHeight),
	}
}

// GlyphHeight returns the byte size of one slot.
func (t *PreviewTable) GlyphHeight() int {
	return t.glyphHeight
}

// Set stores g in slot c. g is truncated or zero-padded to the slot size.
func (t *PreviewTable) Set(c Codepoint, g Glyph) {
	slot := t.data[int(c)*t.glyphHeight : (int(c)+1)*t.glyphHeight]
	n := copy(slot, g)
	for i := n; i < len(slot); i++ {
		slot[i] = 0
	}
}

// Slot returns a copy of the glyph in slot c.
func (t *PreviewTable) Slot(c Codepoint) Glyph {
	g := make(Glyph, t.glyphHeight)
	copy(g, t.data[int(c)*t.glyphHeight:])
	return g
}

// Bytes returns the table in slot order, slot c at offset c*GlyphHeight.
// The returned slice aliases the table.
func (t *PreviewTable) Bytes() []byte {
	return t.data
}
