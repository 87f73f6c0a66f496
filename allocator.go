package img2glyph

// Allocator assigns preview codepoints to glyphs and maintains the packed
// glyph table. One Allocator lives for one conversion; cells must be placed
// in scan order for the output to be reproducible.
type Allocator struct {
	next      int
	preview   *PreviewTable
	packed    []Glyph
	firstCP   map[string]Codepoint // glyph -> first codepoint it was given
	packedIdx map[string]int       // glyph -> position in packed
	stats     AllocStats
}

// AllocStats counts what the allocator did so far.
type AllocStats struct {
	Cells  int // cells placed
	Slices int // slices seen
	Reused int // slices that hit an already known glyph
	Blocks int // consecutive blocks placed for scattered cells
}

// NewAllocator creates an allocator handing out codepoints from start
// upwards, writing glyphHeight-byte slots.
func NewAllocator(start, glyphHeight int) *Allocator {
	return &Allocator{
		next:      start,
		preview:   NewPreviewTable(glyphHeight),
		firstCP:   make(map[string]Codepoint),
		packedIdx: make(map[string]int),
	}
}

// Next returns the next codepoint that would be allocated. It may equal
// CodepointLimit once the table is full.
func (a *Allocator) Next() int {
	return a.next
}

// Preview returns the preview table the allocator writes to.
func (a *Allocator) Preview() *PreviewTable {
	return a.preview
}

// Packed returns the unique glyphs in order of first appearance.
func (a *Allocator) Packed() []Glyph {
	return append([]Glyph(nil), a.packed...)
}

// Lookup returns the first codepoint assigned to a glyph equal to g.
func (a *Allocator) Lookup(g Glyph) (Codepoint, bool) {
	cp, ok := a.firstCP[g.key()]
	return cp, ok
}

// PackedIndex returns the position of g in the packed table.
func (a *Allocator) PackedIndex(g Glyph) (int, bool) {
	i, ok := a.packedIdx[g.key()]
	return i, ok
}

// Stats returns the allocation counters.
func (a *Allocator) Stats() AllocStats {
	return a.stats
}

// plan is the result of looking up a cell's slices without touching the
// allocator.
type plan struct {
	seq         []int   // codepoint each slice would print with
	fresh       []Glyph // glyphs to allocate, in slice order
	reused      int
	consecutive bool
}

// lookup resolves every slice against the index. Unknown glyphs get the
// codepoints they would receive if allocated in order; an unknown glyph
// repeated within the cell resolves to its first simulated codepoint.
func (a *Allocator) lookup(glyphs []Glyph) plan {
	p := plan{seq: make([]int, len(glyphs))}
	pending := make(map[string]int)
	next := a.next
	for i, g := range glyphs {
		k := g.key()
		if cp, ok := a.firstCP[k]; ok {
			p.seq[i] = int(cp)
			p.reused++
			continue
		}
		if cp, ok := pending[k]; ok {
			p.seq[i] = cp
			continue
		}
		pending[k] = next
		p.seq[i] = next
		p.fresh = append(p.fresh, g)
		next++
	}
	p.consecutive = true
	for i := 1; i < len(p.seq); i++ {
		if p.seq[i] != p.seq[0]+i {
			p.consecutive = false
			break
		}
	}
	return p
}

// Place records the slices of one non-empty cell and returns the codepoint
// the cell map should hold: the first of len(glyphs) consecutive codepoints
// whose preview slots show the slices left to right.
//
// Known glyphs reuse their codepoint; new ones get the next free codepoint,
// a packed table entry and a preview slot. If the resulting codepoints are
// not consecutive, a fresh block of len(glyphs) codepoints is placed and
// filled with the slices, without adding packed entries.
//
// Place fails with an *ExhaustedError if either step would reach codepoint
// 256. The allocator is left unchanged in that case.
func (a *Allocator) Place(glyphs []Glyph) (Codepoint, error) {
	if len(glyphs) == 0 {
		return SpaceCodepoint, nil
	}
	p := a.lookup(glyphs)

	if a.next+len(p.fresh) > CodepointLimit {
		tracer().Errorf("codepoints exhausted allocating %d new glyph(s) at 0x%02X",
			len(p.fresh), a.next)
		return 0, &ExhaustedError{Site: SiteAllocate, Next: a.next, Needed: len(p.fresh)}
	}
	if !p.consecutive {
		next := a.next + len(p.fresh)
		if next+len(glyphs) > CodepointLimit {
			tracer().Errorf("codepoints exhausted placing %d-slice block at 0x%02X",
				len(glyphs), next)
			return 0, &ExhaustedError{Site: SiteBlock, Next: next, Needed: len(glyphs)}
		}
	}

	a.stats.Cells++
	a.stats.Slices += len(glyphs)
	a.stats.Reused += p.reused
	for _, g := range p.fresh {
		a.allocate(g)
	}
	if p.consecutive {
		return Codepoint(p.seq[0]), nil
	}

	base := Codepoint(a.next)
	tracer().Debugf("slices map to %v, placing consecutive block at 0x%02X", p.seq, base)
	for _, g := range glyphs {
		cp := Codepoint(a.next)
		a.next++
		a.preview.Set(cp, g)
		// every slice was indexed above; guard keeps packed unique regardless
		if _, ok := a.packedIdx[g.key()]; !ok {
			a.appendPacked(g, cp)
		}
	}
	a.stats.Blocks++
	return base, nil
}

// allocate gives g the next codepoint, a packed entry and a preview slot.
func (a *Allocator) allocate(g Glyph) Codepoint {
	cp := Codepoint(a.next)
	a.next++
	a.appendPacked(g, cp)
	a.preview.Set(cp, g)
	return cp
}

func (a *Allocator) appendPacked(g Glyph, cp Codepoint) {
	k := g.key()
	a.packedIdx[k] = len(a.packed)
	a.packed = append(a.packed, append(Glyph(nil), g...))
	if _, ok := a.firstCP[k]; !ok {
		a.firstCP[k] = cp
	}
}
