package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// StateDir holds the generated bundle and art cache by default
const StateDir = ".bloglabs"

const gitignoreComment = "# bloglabs build output and caches"

// EnsureIgnored adds dir/ to the .gitignore in projectDir unless a line
// already covers it. Nothing is done outside a git checkout.
func EnsureIgnored(projectDir, dir string) (bool, error) {
	if _, err := os.Stat(filepath.Join(projectDir, ".git")); err != nil {
		return false, nil
	}
	path := filepath.Join(projectDir, ".gitignore")

	covered, err := ignoreCovers(path, dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if covered {
		return false, nil
	}
	return true, appendIgnore(path, strings.TrimSuffix(dir, "/")+"/")
}

func ignoreCovers(path, dir string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	dir = strings.Trim(dir, "/")
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		for _, suffix := range []string{"", "/", "/*", "/**", "/**/*"} {
			if line == dir+suffix {
				return true, nil
			}
		}
	}
	return false, scanner.Err()
}

func appendIgnore(path, pattern string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var sb strings.Builder
	if len(existing) > 0 {
		if existing[len(existing)-1] != '\n' {
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(gitignoreComment + "\n" + pattern + "\n")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
