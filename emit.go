package img2glyph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultPreviewName and DefaultHeaderName are the artifact file names
	// the firmware build expects.
	DefaultPreviewName = "preview.bin"
	DefaultHeaderName  = "fontdata.h"
)

// HeaderOptions controls the names used in the generated C header.
type HeaderOptions struct {
	Banner       string // first-line comment, without "// "
	Guard        string // include guard macro
	FontDataName string // packed glyph array
	CellMapName  string // cell map array
}

// DefaultHeaderOptions returns the names the firmware sources include.
func DefaultHeaderOptions() HeaderOptions {
	return HeaderOptions{
		Banner:       "Generated by img2glyph",
		Guard:        "FONTDATA_H",
		FontDataName: "font_data",
		CellMapName:  "cell_map",
	}
}

// WritePreview writes all 256 preview slots, GlyphHeight bytes each, with
// no header.
func WritePreview(w io.Writer, t *PreviewTable) error {
	_, err := w.Write(t.Bytes())
	return err
}

// WriteHeader writes the C header holding GLYPH_HEIGHT, GLYPH_COUNT, the
// packed glyph array and the cell map.
func WriteHeader(w io.Writer, r *Result, opts HeaderOptions) error {
	g := r.Geometry
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// %s\n", opts.Banner)
	fmt.Fprintf(bw, "#ifndef %s\n#define %s\n\n", opts.Guard, opts.Guard)
	fmt.Fprintf(bw, "#include <stdint.h>\n\n")
	fmt.Fprintf(bw, "#define GLYPH_HEIGHT %d\n", g.GlyphHeight)
	fmt.Fprintf(bw, "#define GLYPH_COUNT %d\n\n", len(r.Packed))

	fmt.Fprintf(bw, "/* Packed unique glyphs: %d entries, each GLYPH_HEIGHT bytes */\n", len(r.Packed))
	fmt.Fprintf(bw, "static const uint8_t %s[%d] = {\n", opts.FontDataName, len(r.Packed)*g.GlyphHeight)
	for _, glyph := range r.Packed {
		fmt.Fprintf(bw, "  %s, \n", hexList(glyph))
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "/* %s[row][col] : codepoint to print (0x20 = space). Row-major, left->right, up->down */\n",
		opts.CellMapName)
	fmt.Fprintf(bw, "static const uint8_t %s[%d][%d] = {\n", opts.CellMapName, g.GridRows, g.GridCols)
	for _, row := range r.CellMap {
		cps := make([]byte, len(row))
		for i, cp := range row {
			cps[i] = byte(cp)
		}
		fmt.Fprintf(bw, "  { %s },\n", hexList(cps))
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "#endif // %s\n", opts.Guard)
	return bw.Flush()
}

func hexList(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02X", v)
	}
	return strings.Join(parts, ", ")
}

// Artifact is an extra output file written together with the preview
// table and the header.
type Artifact struct {
	Path string
	Data []byte
}

// WriteArtifacts writes the preview table, the header and any extra
// artifacts as one unit: either every destination is replaced or none is.
// All files are written to temporary files next to their destinations
// first. Existing destinations are moved aside while the temporary files
// are renamed into place and restored if a rename fails.
func WriteArtifacts(r *Result, previewPath, headerPath string, opts HeaderOptions, extra ...Artifact) error {
	var preview, header bytes.Buffer
	if err := WritePreview(&preview, r.Preview); err != nil {
		return fmt.Errorf("failed to render %s: %w", previewPath, err)
	}
	if err := WriteHeader(&header, r, opts); err != nil {
		return fmt.Errorf("failed to render %s: %w", headerPath, err)
	}

	files := append([]Artifact{
		{Path: previewPath, Data: preview.Bytes()},
		{Path: headerPath, Data: header.Bytes()},
	}, extra...)
	if err := writeAll(files); err != nil {
		return err
	}
	tracer().Infof("wrote %s (%d bytes) and %s (%d bytes)",
		previewPath, preview.Len(), headerPath, header.Len())
	for _, a := range extra {
		tracer().Infof("wrote %s (%d bytes)", a.Path, len(a.Data))
	}
	return nil
}

// writeAll replaces every file in files or none of them.
func writeAll(files []Artifact) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		p := filepath.Clean(f.Path)
		if seen[p] {
			return fmt.Errorf("%w: %s is used for more than one output", ErrUsage, f.Path)
		}
		seen[p] = true
	}

	temps := make([]string, 0, len(files))
	for _, f := range files {
		tmp, err := writeTemp(f.Path, f.Data)
		if err != nil {
			removeAll(temps)
			return err
		}
		temps = append(temps, tmp)
	}

	backups := make([]string, len(files))
	for i, f := range files {
		backup, err := replace(f.Path, temps[i])
		if err != nil {
			removeAll(temps[i:])
			for j := i - 1; j >= 0; j-- {
				restore(files[j].Path, backups[j])
			}
			return err
		}
		backups[i] = backup
	}
	removeAll(backups)
	return nil
}

// replace renames tmp to path. An existing file at path is first moved to
// a backup whose name is returned; the backup name is empty if path did
// not exist. On failure path is left as it was.
func replace(path, tmp string) (string, error) {
	backup := ""
	if _, err := os.Lstat(path); err == nil {
		f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".bak*")
		if err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", path, err)
		}
		backup = f.Name()
		f.Close()
		if err := os.Rename(path, backup); err != nil {
			os.Remove(backup)
			return "", fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		if backup != "" {
			os.Rename(backup, path)
		}
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return backup, nil
}

// restore undoes replace.
func restore(path, backup string) {
	if backup == "" {
		os.Remove(path)
		return
	}
	if err := os.Rename(backup, path); err != nil {
		tracer().Errorf("could not restore %s from %s: %v", path, backup, err)
	}
}

func removeAll(names []string) {
	for _, n := range names {
		if n != "" {
			os.Remove(n)
		}
	}
}

// writeTemp writes data to a new temporary file in path's directory and
// returns the temporary file's name.
func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create file for %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Name(), nil
}
