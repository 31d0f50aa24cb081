// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArchiveName(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "phd_documents_20250102_030405.zip", DefaultArchiveName("phd_documents", ts))
	assert.Equal(t, "thesis_20250102_030405.zip", DefaultArchiveName("thesis", ts))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/phd", filepath.Join(home, "phd")},
		{"/abs/path", "/abs/path"},
		{"rel/~x", "rel/~x"},
		{"~other/phd", "~other/phd"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	got, err := ResolveInput(filepath.Join(dir, "sub", ".."))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	missing := filepath.Join(dir, "missing")
	got, err = ResolveInput(missing)
	require.NoError(t, err)
	assert.Equal(t, missing, got, "unresolvable paths are returned absolute and unchanged")
}

func TestArchivePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/in", "bundle.zip"), ArchivePath("/in", "bundle.zip"))
	assert.Equal(t, "/elsewhere/bundle.zip", ArchivePath("/in", "/elsewhere/bundle.zip"))
}
