// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive bundles rendered PDFs into a single deflate-compressed zip.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/pdiddy/pdfbundle/pkg/types"
)

// ErrNoFiles is returned when the source directory holds nothing to archive.
var ErrNoFiles = errors.New("no PDF files to archive")

// Options adjusts which files Create packs.
type Options struct {
	// Include, when non-nil, restricts members to these base names. Names
	// not present in the directory are ignored.
	Include []string
}

// Manifest describes a written archive.
type Manifest struct {
	Path    string
	Members []string
	Size    int64
}

// List returns the base names of the PDFs directly under dir, sorted. The
// listing is taken fresh from the filesystem, so PDFs left by earlier runs
// are included.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), types.PDFExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Create writes every PDF in srcDir into a new zip at dest, replacing any
// existing file there. When there is nothing to pack it returns ErrNoFiles
// and dest is left untouched. Progress lines go to w.
func Create(srcDir, dest string, opts Options, w io.Writer) (Manifest, error) {
	fmt.Fprintf(w, "\nCreating zip archive: %s\n", dest)

	names, err := List(srcDir)
	if err != nil {
		return Manifest{}, err
	}
	if opts.Include != nil {
		names = filter(names, opts.Include)
	}
	if len(names) == 0 {
		return Manifest{}, ErrNoFiles
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".pdfbundle-*.zip")
	if err != nil {
		return Manifest{}, fmt.Errorf("creating archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := writeZip(tmp, srcDir, names, w); err != nil {
		tmp.Close()
		return Manifest{}, err
	}
	// CreateTemp files are 0600; the archive keeps dest's mode when
	// replacing it and is world-readable otherwise.
	if err := tmp.Chmod(archiveMode(dest)); err != nil {
		tmp.Close()
		return Manifest{}, fmt.Errorf("setting archive mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Manifest{}, fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return Manifest{}, fmt.Errorf("moving archive into place: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading archive size: %w", err)
	}

	fmt.Fprintf(w, "SUCCESS: Created %s\n", dest)
	fmt.Fprintf(w, "Archive contains %d PDF files\n", len(names))
	return Manifest{Path: dest, Members: names, Size: info.Size()}, nil
}

func archiveMode(dest string) os.FileMode {
	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}

func writeZip(out io.Writer, srcDir string, names []string, w io.Writer) error {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	for _, name := range names {
		if err := addFile(zw, filepath.Join(srcDir, name), name); err != nil {
			zw.Close()
			return err
		}
		fmt.Fprintf(w, "  Added: %s\n", name)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("building header for %s: %w", name, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func filter(names, include []string) []string {
	keep := make(map[string]bool, len(include))
	for _, n := range include {
		keep[n] = true
	}
	var out []string
	for _, n := range names {
		if keep[n] {
			out = append(out, n)
		}
	}
	return out
}
