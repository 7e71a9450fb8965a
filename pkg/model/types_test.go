package model

import (
	"strings"
	"testing"
)

func TestFragmentKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind FragmentKind
		want bool
	}{
		{"Markup", FragmentMarkup, true},
		{"ASCII", FragmentASCIIArt, true},
		{"Image", FragmentImageRef, true},
		{"Invalid", "video", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("FragmentKind.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFragment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		frag    Fragment
		wantErr string
	}{
		{"markup ok", Fragment{Kind: FragmentMarkup, Markup: "hello"}, ""},
		{"markup with src", Fragment{Kind: FragmentMarkup, Src: "a.png"}, "must not carry"},
		{"ascii ok", Fragment{Kind: FragmentASCIIArt, Art: "@@", Src: "a.png"}, ""},
		{"ascii without src", Fragment{Kind: FragmentASCIIArt, Art: "@@"}, "lost its source"},
		{"ascii without art", Fragment{Kind: FragmentASCIIArt, Src: "a.png"}, "no art"},
		{"image ok", Fragment{Kind: FragmentImageRef, Src: "a.svg"}, ""},
		{"image without src", Fragment{Kind: FragmentImageRef}, "no source"},
		{"unknown kind", Fragment{Kind: "video"}, "invalid fragment kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frag.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBlogPost_Validate(t *testing.T) {
	ok := BlogPost{Slug: "hello", Title: "Hello", Date: "2024-03-01"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid post rejected: %v", err)
	}

	bad := []BlogPost{
		{Title: "No slug"},
		{Slug: "x"},
		{Slug: "x", Title: "Bad date", Date: "03/01/2024"},
		{Slug: "x", Title: "Bad media", Media: []Fragment{{Kind: FragmentImageRef}}},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestBundle_Lookups(t *testing.T) {
	b := &Bundle{
		Posts:    []BlogPost{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}},
		Projects: []Project{{Name: "One"}},
	}

	if p, ok := b.PostBySlug("b"); !ok || p.Title != "B" {
		t.Errorf("PostBySlug(b) = %v, %v", p, ok)
	}
	if _, ok := b.PostBySlug("missing"); ok {
		t.Error("PostBySlug(missing) should fail")
	}
	if _, ok := b.ProjectAt(0); !ok {
		t.Error("ProjectAt(0) should succeed")
	}
	for _, i := range []int{-1, 1, 99} {
		if _, ok := b.ProjectAt(i); ok {
			t.Errorf("ProjectAt(%d) should fail", i)
		}
	}

	var nilBundle *Bundle
	if _, ok := nilBundle.PostBySlug("a"); ok {
		t.Error("nil bundle lookup should fail")
	}
}

func TestBundle_Sort(t *testing.T) {
	b := &Bundle{
		Posts: []BlogPost{
			{Slug: "old", Date: "2023-01-01"},
			{Slug: "new", Date: "2024-06-01"},
			{Slug: "mid", Date: "2023-09-15"},
		},
		Projects: []Project{
			{Name: "zeta"},
			{Name: "Alpha"},
			{Name: "pinned", Order: -1},
		},
	}
	b.Sort()

	gotPosts := []string{b.Posts[0].Slug, b.Posts[1].Slug, b.Posts[2].Slug}
	if strings.Join(gotPosts, ",") != "new,mid,old" {
		t.Errorf("post order = %v", gotPosts)
	}
	gotProjects := []string{b.Projects[0].Name, b.Projects[1].Name, b.Projects[2].Name}
	if strings.Join(gotProjects, ",") != "pinned,Alpha,zeta" {
		t.Errorf("project order = %v", gotProjects)
	}
}

func TestBundle_ValidateDuplicateSlug(t *testing.T) {
	b := &Bundle{Posts: []BlogPost{{Slug: "a", Title: "A"}, {Slug: "a", Title: "A2"}}}
	err := b.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}
