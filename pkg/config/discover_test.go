package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindContentRoot(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	nested := filepath.Join(root, "docs", "drafts")

	for _, dir := range []string{filepath.Join(content, "blogs"), nested} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	got, ok := findContentRoot(nested)
	if !ok {
		t.Fatal("expected to find content root")
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestFindContentRoot_IgnoresEmptyContentDir(t *testing.T) {
	root := t.TempDir()
	// content/ without any known section is not a content root
	if err := os.MkdirAll(filepath.Join(root, "content", "misc"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got, ok := findContentRoot(root); ok && got == filepath.Join(root, "content") {
		t.Errorf("content dir without sections should be skipped, got %q", got)
	}
}

func TestIsContentRoot(t *testing.T) {
	root := t.TempDir()
	if isContentRoot(root) {
		t.Error("empty dir is not a content root")
	}
	if err := os.MkdirAll(filepath.Join(root, "projects"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !isContentRoot(root) {
		t.Error("dir with projects/ is a content root")
	}
	if isContentRoot(filepath.Join(root, "missing")) {
		t.Error("missing dir is not a content root")
	}
}

func TestResolveContentDir_Explicit(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "about"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok := ResolveContentDir(root)
	if !ok || got != root {
		t.Errorf("ResolveContentDir(%q) = %q, %v", root, got, ok)
	}
}
