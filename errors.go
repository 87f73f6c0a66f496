package img2glyph

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage reports an invalid invocation or geometry.
	ErrUsage = errors.New("usage error")
	// ErrInputNotFound reports a missing input image.
	ErrInputNotFound = errors.New("input not found")
	// ErrInputTooSmall reports an image smaller than the grid requires.
	ErrInputTooSmall = errors.New("image too small")
	// ErrInputTooLarge reports an image larger than the grid when cropping
	// is disabled.
	ErrInputTooLarge = errors.New("image too large")
	// ErrCodepointExhausted reports that an allocation would reach
	// codepoint 256.
	ErrCodepointExhausted = errors.New("ran out of preview codepoints")
	// ErrMismatch reports that the artifacts do not reproduce the image.
	ErrMismatch = errors.New("reconstruction mismatch")
)

// AllocSite tells which allocation path ran out of codepoints.
type AllocSite int

const (
	// SiteAllocate is the first allocation of a glyph never seen before.
	SiteAllocate AllocSite = iota
	// SiteBlock is the consecutive block placed for a scattered cell.
	SiteBlock
)

func (s AllocSite) String() string {
	switch s {
	case SiteAllocate:
		return "glyph allocation"
	case SiteBlock:
		return "consecutive block"
	}
	return fmt.Sprintf("AllocSite(%d)", int(s))
}

// ExhaustedError is returned when the preview table has no room left. It
// unwraps to ErrCodepointExhausted.
type ExhaustedError struct {
	Site AllocSite
	// Next is the first free codepoint at the time of failure.
	Next int
	// Needed is the number of codepoints the failing step asked for.
	Needed int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s while making %s: need %d codepoint(s) from 0x%02X",
		ErrCodepointExhausted, e.Site, e.Needed, e.Next)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrCodepointExhausted
}
