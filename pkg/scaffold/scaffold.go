// Package scaffold creates new post and project files in the content tree,
// optionally filling the frontmatter through an interactive form.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Coder-Harshit/bloglabs/pkg/model"
)

// ErrExists is returned when the target file is already present
var ErrExists = errors.New("content file already exists")

var (
	errRequired = errors.New("required")
	errOrder    = errors.New("order must be a whole number")
)

// PostDraft is the frontmatter of a new blog post
type PostDraft struct {
	Slug    string   `yaml:"slug,omitempty"`
	Title   string   `yaml:"title"`
	Author  string   `yaml:"author,omitempty"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Draft   bool     `yaml:"draft,omitempty"`
}

// ProjectDraft is the frontmatter of a new project
type ProjectDraft struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	GitHubURL   string `yaml:"githubUrl"`
	LiveURL     string `yaml:"liveUrl,omitempty"`
	Order       int    `yaml:"order,omitempty"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its words with dashes
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// NewPostDraft returns a draft dated today
func NewPostDraft(title string, now time.Time) PostDraft {
	return PostDraft{
		Title: title,
		Slug:  Slugify(title),
		Date:  now.Format(model.DateLayout),
	}
}

// ValidateTitle requires a non-blank title that yields a slug
func ValidateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	if Slugify(s) == "" {
		return errors.New("title needs at least one letter or digit")
	}
	return nil
}

// ValidateDate accepts YYYY-MM-DD
func ValidateDate(s string) error {
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("date must look like %s", model.DateLayout)
	}
	return nil
}

// ValidateURL accepts empty input or an absolute http(s) URL
func ValidateURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

// SplitTags parses a comma separated tag list
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (d PostDraft) validate() error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	return ValidateDate(d.Date)
}

func (d ProjectDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if d.GitHubURL == "" {
		return errors.New("githubUrl is required")
	}
	if err := ValidateURL(d.GitHubURL); err != nil {
		return fmt.Errorf("githubUrl: %w", err)
	}
	if err := ValidateURL(d.LiveURL); err != nil {
		return fmt.Errorf("liveUrl: %w", err)
	}
	return nil
}

// RenderPost produces the markdown file for a post draft
func RenderPost(d PostDraft) ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.Slug == "" {
		d.Slug = Slugify(d.Title)
	}
	return render(d, "Write your post here.\n\n```go\nfmt.Println(\"hello\")\n```\n")
}

// RenderProject produces the markdown file for a project draft
func RenderProject(d ProjectDraft) ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	return render(d, "Describe the project here.\n")
}

func render(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// WritePost creates content/blogs/<slug>.md and returns its path
func WritePost(root string, d PostDraft, overwrite bool) (string, error) {
	data, err := RenderPost(d)
	if err != nil {
		return "", err
	}
	slug := d.Slug
	if slug == "" {
		slug = Slugify(d.Title)
	}
	return write(filepath.Join(root, "blogs", slug+".md"), data, overwrite)
}

// WriteProject creates content/projects/<slug>.md and returns its path
func WriteProject(root string, d ProjectDraft, overwrite bool) (string, error) {
	data, err := RenderProject(d)
	if err != nil {
		return "", err
	}
	return write(filepath.Join(root, "projects", Slugify(d.Name)+".md"), data, overwrite)
}

func write(path string, data []byte, overwrite bool) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrExists)
		}
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
