// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// archiveTimeLayout renders the run time as YYYYMMDD_HHMMSS.
const archiveTimeLayout = "20060102_150405"

// DefaultArchiveName returns "<prefix>_<YYYYMMDD_HHMMSS>.zip" for t in local
// time.
func DefaultArchiveName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.zip", prefix, t.Format(archiveTimeLayout))
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ResolveInput expands "~" and makes path absolute and clean.
func ResolveInput(path string) (string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// ArchivePath places name inside inputDir unless name is already absolute.
func ArchivePath(inputDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(inputDir, name)
}
