package img2glyph

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// CodepointLimit is the size of the preview table; no codepoint may
	// reach it.
	CodepointLimit = 256

	// SpaceCodepoint marks an empty cell in the cell map.
	SpaceCodepoint Codepoint = 0x20
)

// Codepoint is a character code the firmware prints; it doubles as the
// index of a preview table slot.
type Codepoint uint8

// Glyph is one 8 pixel wide strip of a cell, one byte per row, top to
// bottom. Bit 7 of each byte is the leftmost pixel, a set bit is ink.
type Glyph []byte

// Equal reports whether g and o hold the same rows.
func (g Glyph) Equal(o Glyph) bool {
	return bytes.Equal(g, o)
}

// key returns a comparable form of the glyph for map lookups.
func (g Glyph) key() string {
	return string(g)
}

// Blank reports whether the glyph has no ink at all.
func (g Glyph) Blank() bool {
	for _, b := range g {
		if b != 0 {
			return false
		}
	}
	return true
}

// String renders the glyph as hex bytes, e.g. "80 00 00 ...".
func (g Glyph) String() string {
	var sb strings.Builder
	for i, b := range g {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// Art renders the glyph as rows of '#' and '.', useful in failing tests.
func (g Glyph) Art() string {
	var sb strings.Builder
	for _, b := range g {
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<bit) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
