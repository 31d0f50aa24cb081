// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDFs(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		body := "%PDF-1.5\n" + strings.Repeat(n, 200)
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(body), 0o644))
	}
}

func members(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	got := map[string]string{}
	for _, f := range r.File {
		assert.Equal(t, zip.Deflate, f.Method, "member %s should be deflated", f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[f.Name] = string(data)
	}
	return got
}

func TestCreate(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	writePDFs(t, src, "b.pdf", "a.pdf", "c.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0o644))

	dest := filepath.Join(root, "bundle.zip")
	var log bytes.Buffer
	m, err := Create(src, dest, Options{}, &log)
	require.NoError(t, err)

	assert.Equal(t, dest, m.Path)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, m.Members)
	assert.Positive(t, m.Size)

	got := members(t, dest)
	assert.Len(t, got, 3)
	orig, err := os.ReadFile(filepath.Join(src, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, string(orig), got["a.pdf"])

	out := log.String()
	assert.Contains(t, out, "Creating zip archive: "+dest)
	assert.Contains(t, out, "  Added: a.pdf")
	assert.Contains(t, out, "Archive contains 3 PDF files")
}

func TestCreateNoFiles(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	require.NoError(t, os.MkdirAll(src, 0o755))

	dest := filepath.Join(root, "bundle.zip")
	_, err := Create(src, dest, Options{}, io.Discard)
	require.ErrorIs(t, err, ErrNoFiles)
	assert.NoFileExists(t, dest)

	leftovers, err := filepath.Glob(filepath.Join(root, "*.zip"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "no temp archive should remain")
}

func TestCreateIncludesStrayPDFs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	writePDFs(t, src, "current.pdf", "stray-from-last-week.pdf")

	m, err := Create(src, filepath.Join(root, "bundle.zip"), Options{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"current.pdf", "stray-from-last-week.pdf"}, m.Members)
}

func TestCreateInclude(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	writePDFs(t, src, "current.pdf", "stray.pdf")

	dest := filepath.Join(root, "bundle.zip")
	m, err := Create(src, dest, Options{Include: []string{"current.pdf", "missing.pdf"}}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"current.pdf"}, m.Members)

	_, err = Create(src, dest, Options{Include: []string{}}, io.Discard)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestCreateOverwrites(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	writePDFs(t, src, "a.pdf", "b.pdf")
	dest := filepath.Join(root, "bundle.zip")

	first, err := Create(src, dest, Options{}, io.Discard)
	require.NoError(t, err)
	second, err := Create(src, dest, Options{}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, first.Members, second.Members)
	names := make([]string, 0)
	for n := range members(t, dest) {
		names = append(names, n)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names)
}

func TestCreateFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	root := t.TempDir()
	src := filepath.Join(root, "pdf_output")
	writePDFs(t, src, "a.pdf")

	fresh := filepath.Join(root, "fresh.zip")
	_, err := Create(src, fresh, Options{}, io.Discard)
	require.NoError(t, err)
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	private := filepath.Join(root, "private.zip")
	require.NoError(t, os.WriteFile(private, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(private, 0o600))
	_, err = Create(src, private, Options{}, io.Discard)
	require.NoError(t, err)
	info, err = os.Stat(private)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
