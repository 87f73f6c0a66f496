/*
Package img2glyph converts a monochrome glyph-grid image into the artifacts
a text-mode firmware needs to draw it: a 256-slot preview font table and a
C header holding a packed, deduplicated glyph array plus a cell map.

The image is cut into a fixed grid of character cells. Every non-empty cell
is split into 8 pixel wide slices and each slice is packed into a Glyph, one
byte per row with bit 7 as the leftmost pixel. An Allocator hands out
codepoints starting at 0xC0, reusing the codepoint of any glyph it has seen
before. The firmware prints a cell as a run of consecutive codepoints, so
when reuse leaves a multi-slice cell with scattered codepoints the
allocator places a fresh consecutive block for it.

Note that such a block points at glyphs that may already be present in the
packed table. The packed table stays free of duplicates while the same
bitmap becomes visible at more than one preview codepoint; the relation
between packed storage and preview slots is not one to one.
*/
package img2glyph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'img2glyph'
func tracer() tracing.Trace {
	return tracing.Select("img2glyph")
}
