// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownExt is the extension Discover selects.
const MarkdownExt = ".md"

// Discover lists the Markdown files directly under dir, sorted
// lexicographically. Subdirectories are not descended into. An empty
// result is not an error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), MarkdownExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !entry.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func baseName(path string) string {
	return filepath.Base(path)
}
