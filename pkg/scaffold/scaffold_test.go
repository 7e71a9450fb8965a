package scaffold

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Coder-Harshit/bloglabs/pkg/content"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":            "hello-world",
		"  Go: The Good Parts! ": "go-the-good-parts",
		"already-slugged":        "already-slugged",
		"???":                    "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidators(t *testing.T) {
	if ValidateTitle("  ") == nil || ValidateTitle("!!") == nil || ValidateTitle("Ok") != nil {
		t.Error("ValidateTitle")
	}
	if ValidateDate("2024-13-01") == nil || ValidateDate("2024-05-01") != nil {
		t.Error("ValidateDate")
	}
	for _, bad := range []string{"ftp://x.y", "github.com/a", "https://"} {
		if ValidateURL(bad) == nil {
			t.Errorf("ValidateURL(%q) accepted", bad)
		}
	}
	if ValidateURL("") != nil || ValidateURL("https://github.com/a/b") != nil {
		t.Error("ValidateURL rejected a good value")
	}
	if validateOrder("x") == nil || validateOrder(" 3 ") != nil || validateOrder("") != nil {
		t.Error("validateOrder")
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" go, tui ,, blog ")
	if strings.Join(got, "|") != "go|tui|blog" {
		t.Errorf("SplitTags = %q", got)
	}
	if SplitTags("") != nil {
		t.Error("empty input should give no tags")
	}
}

func TestRenderPost(t *testing.T) {
	d := NewPostDraft("Hello World", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	d.Tags = []string{"go"}
	data, err := RenderPost(d)
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	s := string(data)
	for _, want := range []string{"---\n", "title: Hello World", "slug: hello-world", "2024-05-01", "- go"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
	if strings.Contains(s, "author:") {
		t.Error("empty author should be omitted")
	}

	if _, err := RenderPost(PostDraft{Title: "x", Date: "yesterday"}); err == nil {
		t.Error("bad date accepted")
	}
}

func TestRenderProject_Validation(t *testing.T) {
	if _, err := RenderProject(ProjectDraft{Name: "x"}); err == nil {
		t.Error("missing githubUrl accepted")
	}
	if _, err := RenderProject(ProjectDraft{Name: "x", GitHubURL: "https://github.com/a/b", LiveURL: "nope"}); err == nil {
		t.Error("bad liveUrl accepted")
	}
}

func TestWrite_RoundTripsThroughBuilder(t *testing.T) {
	root := t.TempDir()

	post := NewPostDraft("Hello World", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	post.Author = "Harshit"
	post.Summary = "First."
	if _, err := WritePost(root, post, false); err != nil {
		t.Fatalf("WritePost: %v", err)
	}
	if _, err := WriteProject(root, ProjectDraft{
		Name:        "Blog Labs",
		Description: "Terminal blog",
		GitHubURL:   "https://github.com/Coder-Harshit/bloglabs",
		Order:       2,
	}, false); err != nil {
		t.Fatalf("WriteProject: %v", err)
	}

	b, err := content.NewBuilder(content.Options{Root: root}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Posts) != 1 {
		t.Fatalf("posts = %d", len(b.Posts))
	}
	p := b.Posts[0]
	if p.Slug != "hello-world" || p.Title != "Hello World" || p.Author != "Harshit" || p.Date != "2024-05-01" {
		t.Errorf("post = %+v", p)
	}
	if len(p.CodeBlocks) != 1 || p.CodeBlocks[0].Language != "go" {
		t.Errorf("code blocks = %+v", p.CodeBlocks)
	}
	if len(b.Projects) != 1 || b.Projects[0].Name != "Blog Labs" || b.Projects[0].Order != 2 {
		t.Errorf("projects = %+v", b.Projects)
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	d := NewPostDraft("Same", time.Now())
	path, err := WritePost(root, d, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WritePost(root, d, false); !errors.Is(err, ErrExists) {
		t.Errorf("second write err = %v, want ErrExists", err)
	}
	d.Summary = "changed"
	if _, err := WritePost(root, d, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "changed") {
		t.Error("overwrite did not replace the file")
	}
}

func TestForms(t *testing.T) {
	d := PostDraft{Title: "T", Tags: []string{"a", "b"}}
	form, finish := PostForm(&d)
	if form == nil {
		t.Fatal("PostForm returned nil")
	}
	finish()
	if strings.Join(d.Tags, ",") != "a,b" || d.Slug != "t" {
		t.Errorf("finish produced %+v", d)
	}

	pd := ProjectDraft{Order: 4}
	pform, pfinish := ProjectForm(&pd)
	if pform == nil {
		t.Fatal("ProjectForm returned nil")
	}
	pfinish()
	if pd.Order != 4 {
		t.Errorf("order = %d", pd.Order)
	}
}
