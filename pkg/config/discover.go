package config

import (
	"os"
	"path/filepath"
)

// contentSections are the subdirectories that mark a content root.
var contentSections = []string{"blogs", "about", "projects"}

// ResolveContentDir returns dir when it exists, otherwise walks up from the
// working directory looking for a content/ tree.
func ResolveContentDir(dir string) (string, bool) {
	dir = expandHome(dir)
	if isContentRoot(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return dir, true
		}
		return abs, true
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findContentRoot(wd)
}

// findContentRoot walks up from dir looking for a content/ directory with at
// least one known section.
func findContentRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, "content")
		if isContentRoot(candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

func isContentRoot(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, s := range contentSections {
		if info, err := os.Stat(filepath.Join(dir, s)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
