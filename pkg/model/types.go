package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in frontmatter and on screen.
const DateLayout = "2006-01-02"

// CodeBlock is a fenced code sample attached to a blog post
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// BlogPost represents a single published article
type BlogPost struct {
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	Date       string      `json:"date"`
	Summary    string      `json:"summary"`
	Tags       []string    `json:"tags,omitempty"`
	Paragraphs []string    `json:"paragraphs"`
	CodeBlocks []CodeBlock `json:"codeBlocks,omitempty"`
	Media      []Fragment  `json:"media,omitempty"`
}

// Validate checks required fields
func (p *BlogPost) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("post slug cannot be empty")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("post %s: title cannot be empty", p.Slug)
	}
	if p.Date != "" {
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return fmt.Errorf("post %s: invalid date %q: %w", p.Slug, p.Date, err)
		}
	}
	for i, f := range p.Media {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("post %s: media %d: %w", p.Slug, i, err)
		}
	}
	return nil
}

// Project is a showcased piece of work
type Project struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GitHubURL   string     `json:"githubUrl"`
	LiveURL     string     `json:"liveUrl,omitempty"`
	Order       int        `json:"order,omitempty"`
	Body        []Fragment `json:"body,omitempty"`
}

// Validate checks required fields
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	for i, f := range p.Body {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("project %s: fragment %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// AboutContent is the singleton author page
type AboutContent struct {
	Title string     `json:"title"`
	Body  []Fragment `json:"body"`
}

// FragmentKind discriminates the Fragment variants
type FragmentKind string

const (
	// FragmentMarkup holds pre-rendered styled text.
	FragmentMarkup FragmentKind = "markup"
	// FragmentASCIIArt holds a converted image and its original reference.
	FragmentASCIIArt FragmentKind = "ascii"
	// FragmentImageRef is an image that could not be converted.
	FragmentImageRef FragmentKind = "image"
)

// IsValid returns true if the kind is a recognized value
func (k FragmentKind) IsValid() bool {
	switch k {
	case FragmentMarkup, FragmentASCIIArt, FragmentImageRef:
		return true
	}
	return false
}

// Fragment is one piece of a pre-rendered body. Image variants always keep
// the original reference in Src.
type Fragment struct {
	Kind   FragmentKind `json:"kind"`
	Markup string       `json:"markup,omitempty"`
	Art    string       `json:"art,omitempty"`
	Src    string       `json:"src,omitempty"`
	Alt    string       `json:"alt,omitempty"`
}

// Validate checks that the fields present match the variant
func (f Fragment) Validate() error {
	switch f.Kind {
	case FragmentMarkup:
		if f.Art != "" || f.Src != "" {
			return fmt.Errorf("markup fragment must not carry image fields")
		}
	case FragmentASCIIArt:
		if f.Art == "" {
			return fmt.Errorf("ascii fragment has no art")
		}
		if f.Src == "" {
			return fmt.Errorf("ascii fragment lost its source reference")
		}
	case FragmentImageRef:
		if f.Src == "" {
			return fmt.Errorf("image fragment has no source reference")
		}
	default:
		return fmt.Errorf("invalid fragment kind %q", f.Kind)
	}
	return nil
}

// IsImage reports whether the fragment came from an image reference
func (f Fragment) IsImage() bool {
	return f.Kind == FragmentASCIIArt || f.Kind == FragmentImageRef
}

// Bundle is the complete ingested site content
type Bundle struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Hash        string       `json:"hash"`
	Posts       []BlogPost   `json:"posts"`
	Projects    []Project    `json:"projects"`
	About       AboutContent `json:"about"`
}

// PostBySlug returns the post with the given slug
func (b *Bundle) PostBySlug(slug string) (*BlogPost, bool) {
	if b == nil {
		return nil, false
	}
	for i := range b.Posts {
		if b.Posts[i].Slug == slug {
			return &b.Posts[i], true
		}
	}
	return nil, false
}

// ProjectAt returns the project at index i
func (b *Bundle) ProjectAt(i int) (*Project, bool) {
	if b == nil || i < 0 || i >= len(b.Projects) {
		return nil, false
	}
	return &b.Projects[i], true
}

// Sort orders posts newest first and projects by Order then name.
func (b *Bundle) Sort() {
	sort.SliceStable(b.Posts, func(i, j int) bool {
		if b.Posts[i].Date != b.Posts[j].Date {
			return b.Posts[i].Date > b.Posts[j].Date
		}
		return b.Posts[i].Slug < b.Posts[j].Slug
	})
	sort.SliceStable(b.Projects, func(i, j int) bool {
		if b.Projects[i].Order != b.Projects[j].Order {
			return b.Projects[i].Order < b.Projects[j].Order
		}
		return strings.ToLower(b.Projects[i].Name) < strings.ToLower(b.Projects[j].Name)
	})
}

// Validate checks every item and slug uniqueness
func (b *Bundle) Validate() error {
	seen := make(map[string]bool, len(b.Posts))
	for i := range b.Posts {
		p := &b.Posts[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Slug] {
			return fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	for i := range b.Projects {
		if err := b.Projects[i].Validate(); err != nil {
			return err
		}
	}
	for i, f := range b.About.Body {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("about fragment %d: %w", i, err)
		}
	}
	return nil
}
