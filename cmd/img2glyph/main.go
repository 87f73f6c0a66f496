// Command img2glyph converts a black and white glyph-grid image into a VGA
// preview font table (preview.bin) and a C header with the packed glyphs and
// the cell map (fontdata.h).
//
//	img2glyph [flags] logo.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/wbrown/img2glyph"
	"github.com/wbrown/img2glyph/imageutil"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitNotFound
	exitSize
	exitExhausted
	exitBlockExhausted
	exitIO
	exitMismatch
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "img2glyph: ", 0)
	flags := flag.NewFlagSet("img2glyph", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: img2glyph [flags] input.png\n")
		flags.PrintDefaults()
	}

	def := img2glyph.DefaultGeometry()
	rows := flags.Int("rows", def.GridRows, "Grid height in cells")
	cols := flags.Int("cols", def.GridCols, "Grid width in cells")
	cellW := flags.Int("cellw", def.CellWidth, "Cell width in pixels")
	cellH := flags.Int("cellh", def.CellHeight, "Cell height in pixels")
	glyphH := flags.Int("glyphh", 0, "Glyph height in rows (0 = cell height)")
	start := flags.Int("start", def.StartCodepoint, "First preview codepoint")
	previewPath := flags.String("preview", img2glyph.DefaultPreviewName, "Path of the preview table output")
	headerPath := flags.String("header", img2glyph.DefaultHeaderName, "Path of the C header output")
	sheetPath := flags.String("sheet", "", "Also render all preview slots to this PNG")
	fontPath := flags.String("font", "", "TTF file for sheet labels (default: built-in 7x13)")
	fontSize := flags.Float64("fontsize", 12, "Point size for TTF sheet labels")
	scale := flags.Int("scale", 2, "Pixel scale for the sheet and reconstruction PNGs")
	reconstructPath := flags.String("reconstruct", "", "Also redraw the grid from the artifacts to this PNG")
	crop := flags.Bool("crop", false, "Accept larger images and scan the top-left grid only")
	verify := flags.Bool("verify", false, "Check the artifacts reproduce every cell before writing")
	verbose := flags.Bool("v", false, "Trace every cell placement")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}
	inPath := flags.Arg(0)

	geom := img2glyph.Geometry{
		GridRows:       *rows,
		GridCols:       *cols,
		CellWidth:      *cellW,
		CellHeight:     *cellH,
		GlyphHeight:    *glyphH,
		StartCodepoint: *start,
	}
	if geom.GlyphHeight == 0 {
		geom.GlyphHeight = geom.CellHeight
	}
	installTracer(stderr, *verbose)

	if _, err := os.Stat(inPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", img2glyph.ErrInputNotFound, inPath)
		}
		return fail(logger, err)
	}
	src, err := imageutil.LoadBitmap(inPath)
	if err != nil {
		return fail(logger, err)
	}

	conv := img2glyph.NewConverter(img2glyph.WithGeometry(geom), img2glyph.WithCrop(*crop))
	result, err := conv.Convert(src)
	if err != nil {
		return fail(logger, err)
	}
	if *verify {
		if err := img2glyph.Verify(src, result); err != nil {
			return fail(logger, err)
		}
	}

	// Everything that can fail is prepared before the first file is
	// replaced.
	var extra []img2glyph.Artifact
	if *sheetPath != "" {
		opts := img2glyph.SheetOptions{
			Scale: *scale,
			First: result.Stats.StartCodepoint,
			Next:  result.Stats.NextCodepoint,
		}
		if *fontPath != "" {
			face, err := img2glyph.LoadLabelFace(*fontPath, *fontSize)
			if err != nil {
				return fail(logger, err)
			}
			defer face.Close()
			opts.Face = face
		}
		data, err := imageutil.EncodePNG(img2glyph.RenderPreviewSheet(result.Preview, opts))
		if err != nil {
			return fail(logger, err)
		}
		extra = append(extra, img2glyph.Artifact{Path: *sheetPath, Data: data})
	}
	if *reconstructPath != "" {
		data, err := imageutil.EncodePNG(imageutil.ScaleNearest(img2glyph.Reconstruct(result), *scale))
		if err != nil {
			return fail(logger, err)
		}
		extra = append(extra, img2glyph.Artifact{Path: *reconstructPath, Data: data})
	}

	if err := img2glyph.WriteArtifacts(result, *previewPath, *headerPath,
		img2glyph.DefaultHeaderOptions(), extra...); err != nil {
		return fail(logger, err)
	}
	fmt.Fprintf(stdout, "Wrote %s and %s\n", *previewPath, *headerPath)
	if *sheetPath != "" {
		fmt.Fprintf(stdout, "Wrote preview sheet %s\n", *sheetPath)
	}
	if *reconstructPath != "" {
		fmt.Fprintf(stdout, "Wrote reconstruction %s\n", *reconstructPath)
	}

	s := result.Stats
	fmt.Fprintf(stdout, "Grid %dx%d, unique glyphs %d, preview start CP 0x%02X\n",
		geom.GridCols, geom.GridRows, len(result.Packed), geom.StartCodepoint)
	fmt.Fprintf(stdout, "Codepoints used: %d, empty cells: %d, reused slices: %d, consecutive blocks: %d\n",
		s.CodepointsUsed(), s.EmptyCells, s.Reused, s.Blocks)
	return exitOK
}

// singleTracer hands out the same trace for every key.
type singleTracer struct {
	trace tracing.Trace
}

func (s singleTracer) Select(string) tracing.Trace {
	return s.trace
}

// installTracer routes library tracing to w: Info and up by default,
// Debug when verbose.
func installTracer(w io.Writer, verbose bool) {
	t := gologadapter.New()
	t.SetOutput(w)
	t.SetTraceLevel(tracing.LevelInfo)
	if verbose {
		t.SetTraceLevel(tracing.LevelDebug)
	}
	tracing.SetTraceSelector(singleTracer{trace: t})
}

// fail reports err and maps it to an exit code.
func fail(logger *log.Logger, err error) int {
	logger.Printf("Error: %v", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var exhausted *img2glyph.ExhaustedError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, img2glyph.ErrUsage):
		return exitUsage
	case errors.Is(err, img2glyph.ErrInputNotFound):
		return exitNotFound
	case errors.Is(err, img2glyph.ErrInputTooSmall), errors.Is(err, img2glyph.ErrInputTooLarge):
		return exitSize
	case errors.As(err, &exhausted):
		if exhausted.Site == img2glyph.SiteBlock {
			return exitBlockExhausted
		}
		return exitExhausted
	case errors.Is(err, img2glyph.ErrMismatch):
		return exitMismatch
	}
	return exitIO
}
