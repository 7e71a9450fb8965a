// Package content ingests the markdown content tree into a model.Bundle.
//
// Layout under the content root:
//
//	blogs/*.md     one post per file
//	about/*.md     first file (sorted) is the about page
//	projects/*.md  one project per file
//
// Items that fail to parse are logged and skipped; images that cannot be
// converted fall back to their original reference.
package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Coder-Harshit/bloglabs/pkg/ascii"
	"github.com/Coder-Harshit/bloglabs/pkg/model"
)

// DefaultAuthor is used when a post omits the author field.
const DefaultAuthor = "BlogLabs Admin"

const summaryLimit = 160

// DetailsWidth is the panel width project bodies are shown in.
const DetailsWidth = 44

var errDraft = errors.New("draft")

// Options configures a Builder
type Options struct {
	Root          string // content directory
	PublicDir     string // resolves absolute image paths such as /images/a.png
	ArtWidth      int
	Normalize     bool
	MarkdownWidth int
	MarkdownStyle string
	Concurrency   int
	IncludeDrafts bool
	Cache         *ArtCache
}

// Builder runs the ingestion pipeline
type Builder struct {
	opts Options

	mdMu     sync.Mutex
	markdown *MarkdownRenderer
}

// NewBuilder creates a builder, filling in defaults
func NewBuilder(opts Options) *Builder {
	if opts.ArtWidth <= 0 {
		opts.ArtWidth = ascii.DefaultWidth
	}
	if opts.MarkdownWidth <= 0 {
		opts.MarkdownWidth = 70
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Builder{
		opts:     opts,
		markdown: NewMarkdownRenderer(opts.MarkdownWidth, opts.MarkdownStyle),
	}
}

// Build ingests the whole content tree
func (b *Builder) Build(ctx context.Context) (*model.Bundle, error) {
	info, err := os.Stat(b.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", b.opts.Root)
	}

	hash, err := SourceHash(b.opts.Root)
	if err != nil {
		return nil, err
	}

	postFiles := markdownFiles(filepath.Join(b.opts.Root, "blogs"))
	projectFiles := markdownFiles(filepath.Join(b.opts.Root, "projects"))
	aboutFiles := markdownFiles(filepath.Join(b.opts.Root, "about"))

	posts := make([]*model.BlogPost, len(postFiles))
	projects := make([]*model.Project, len(projectFiles))
	var about *model.AboutContent

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for i, path := range postFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, err := b.loadPost(path)
			if err != nil {
				if !errors.Is(err, errDraft) {
					log.Printf("content: skipping post %s: %v", path, err)
				}
				return nil
			}
			posts[i] = post
			return nil
		})
	}
	for i, path := range projectFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			project, err := b.loadProject(path)
			if err != nil {
				if !errors.Is(err, errDraft) {
					log.Printf("content: skipping project %s: %v", path, err)
				}
				return nil
			}
			projects[i] = project
			return nil
		})
	}
	if len(aboutFiles) > 0 {
		path := aboutFiles[0]
		g.Go(func() error {
			a, err := b.loadAbout(path)
			if err != nil {
				log.Printf("content: skipping about %s: %v", path, err)
				return nil
			}
			about = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &model.Bundle{
		GeneratedAt: time.Now().UTC(),
		Hash:        hash,
		About:       model.AboutContent{Title: "About Me"},
	}
	seen := make(map[string]string)
	for i, p := range posts {
		if p == nil {
			continue
		}
		if prev, dup := seen[p.Slug]; dup {
			log.Printf("content: skipping %s: slug %q already used by %s", postFiles[i], p.Slug, prev)
			continue
		}
		seen[p.Slug] = postFiles[i]
		bundle.Posts = append(bundle.Posts, *p)
	}
	for _, p := range projects {
		if p != nil {
			bundle.Projects = append(bundle.Projects, *p)
		}
	}
	if about != nil {
		bundle.About = *about
	}
	bundle.Sort()
	return bundle, nil
}

func (b *Builder) loadPost(path string) (*model.BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m postMatter
	body, err := splitFrontmatter(data, &m)
	if err != nil {
		return nil, err
	}
	if m.Draft && !b.opts.IncludeDrafts {
		return nil, errDraft
	}

	doc := parseBody(body)
	post := &model.BlogPost{
		Slug:       m.Slug,
		Title:      strings.TrimSpace(m.Title),
		Author:     strings.TrimSpace(m.Author),
		Date:       strings.TrimSpace(m.Date),
		Summary:    strings.TrimSpace(m.Summary),
		Tags:       m.Tags,
		Paragraphs: doc.Paragraphs,
	}
	if post.Slug == "" {
		post.Slug = slugFromPath(path)
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	if post.Summary == "" && len(doc.Paragraphs) > 0 {
		post.Summary = truncateRunes(doc.Paragraphs[0], summaryLimit)
	}
	for _, c := range doc.Code {
		post.CodeBlocks = append(post.CodeBlocks, model.CodeBlock{Language: c.Language, Code: c.Code})
	}
	dir := filepath.Dir(path)
	for _, img := range doc.Images {
		post.Media = append(post.Media, b.imageFragment(img, dir))
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

func (b *Builder) loadProject(path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m projectMatter
	body, err := splitFrontmatter(data, &m)
	if err != nil {
		return nil, err
	}
	if m.Draft && !b.opts.IncludeDrafts {
		return nil, errDraft
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = strings.TrimSpace(m.Title)
	}
	if name == "" {
		name = slugFromPath(path)
	}
	frags, err := b.renderBody(body, filepath.Dir(path), min(b.opts.MarkdownWidth, DetailsWidth))
	if err != nil {
		return nil, err
	}
	project := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(m.Description),
		GitHubURL:   strings.TrimSpace(m.GitHubURL),
		LiveURL:     strings.TrimSpace(m.LiveURL),
		Order:       m.Order,
		Body:        frags,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func (b *Builder) loadAbout(path string) (*model.AboutContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m aboutMatter
	body, err := splitFrontmatter(data, &m)
	if err != nil {
		return nil, err
	}
	frags, err := b.renderBody(body, filepath.Dir(path), b.opts.MarkdownWidth)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = "About Me"
	}
	return &model.AboutContent{Title: title, Body: frags}, nil
}

// renderBody renders markdown to markup fragments wrapped at width, splitting
// out standalone images so they can be shown as ASCII art in place.
func (b *Builder) renderBody(body []byte, dir string, width int) ([]model.Fragment, error) {
	doc := parseBody(body)
	var frags []model.Fragment
	pos := 0
	flush := func(chunk []byte) error {
		if strings.TrimSpace(string(chunk)) == "" {
			return nil
		}
		markup, err := b.renderMarkdown(string(chunk), width)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		frags = append(frags, model.Fragment{Kind: model.FragmentMarkup, Markup: strings.TrimRight(markup, "\n")})
		return nil
	}
	for _, img := range doc.Images {
		if !img.Standalone {
			continue
		}
		if err := flush(body[pos:img.start]); err != nil {
			return nil, err
		}
		frags = append(frags, b.imageFragment(img, dir))
		pos = img.stop
	}
	if err := flush(body[pos:]); err != nil {
		return nil, err
	}
	return frags, nil
}

func (b *Builder) renderMarkdown(src string, width int) (string, error) {
	b.mdMu.Lock()
	defer b.mdMu.Unlock()
	b.markdown.SetWidth(width)
	return b.markdown.Render(src)
}

// imageFragment converts an image reference. The original reference is kept
// whatever happens; on failure the fragment stays a plain image reference.
func (b *Builder) imageFragment(img imageRef, dir string) model.Fragment {
	frag := model.Fragment{Kind: model.FragmentImageRef, Src: img.Src, Alt: img.Alt}
	path, ok := b.resolveImage(img.Src, dir)
	if !ok || !ascii.Supported(path) {
		return frag
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("content: image %s: %v", img.Src, err)
		return frag
	}

	key := ArtKey(data, b.opts.ArtWidth, b.opts.Normalize)
	if art, hit, err := b.opts.Cache.Get(key); err != nil {
		log.Printf("content: art cache: %v", err)
	} else if hit {
		frag.Kind = model.FragmentASCIIArt
		frag.Art = art
		return frag
	}

	art, err := ascii.ConvertBytes(data, ascii.Options{Width: b.opts.ArtWidth, Normalize: b.opts.Normalize})
	if err != nil || art == "" {
		log.Printf("content: skipping ascii art for %s: %v", img.Src, err)
		return frag
	}
	if err := b.opts.Cache.Put(key, art); err != nil {
		log.Printf("content: art cache: %v", err)
	}
	frag.Kind = model.FragmentASCIIArt
	frag.Art = art
	return frag
}

func (b *Builder) resolveImage(src, dir string) (string, bool) {
	if src == "" || strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return "", false
	}
	var candidates []string
	if strings.HasPrefix(src, "/") {
		if b.opts.PublicDir != "" {
			candidates = append(candidates, filepath.Join(b.opts.PublicDir, src))
		}
		candidates = append(candidates, filepath.Join(b.opts.Root, src))
	} else {
		candidates = append(candidates, filepath.Join(dir, src))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	log.Printf("content: image %s not found", src)
	return "", false
}

// markdownFiles lists *.md files directly inside dir, sorted
func markdownFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// SourceHash digests every file under root (paths and contents). It is the
// bundle identity used to skip rebuilds when nothing changed.
func SourceHash(root string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s\x00%d\x00", filepath.ToSlash(rel), len(data))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func slugFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(base), " ", "-"))
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}
