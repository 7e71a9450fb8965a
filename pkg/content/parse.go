package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// postMatter is the frontmatter of content/blogs/*.md
type postMatter struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Author  string   `yaml:"author"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	Draft   bool     `yaml:"draft"`
}

// aboutMatter is the frontmatter of content/about/*.md
type aboutMatter struct {
	Title string `yaml:"title"`
}

// projectMatter is the frontmatter of content/projects/*.md
type projectMatter struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	GitHubURL   string `yaml:"githubUrl"`
	LiveURL     string `yaml:"liveUrl"`
	Order       int    `yaml:"order"`
	Draft       bool   `yaml:"draft"`
}

// imageRef is an image found in a markdown body
type imageRef struct {
	Src string
	Alt string
	// Standalone images occupy a whole paragraph; start and stop are its
	// byte range in the body.
	Standalone  bool
	start, stop int
}

// document is the structural walk of one markdown body
type document struct {
	Body       []byte
	Paragraphs []string
	Code       []codeBlock
	Images     []imageRef
}

type codeBlock struct {
	Language string
	Code     string
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// splitFrontmatter decodes the frontmatter into matter and returns the body
func splitFrontmatter(data []byte, matter any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(data), matter)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}

// parseBody walks the markdown AST collecting prose, code and images.
func parseBody(body []byte) document {
	doc := document{Body: body}
	root := md.Parser().Parse(text.NewReader(body))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Paragraph:
			if img, ok := standaloneImage(node, body); ok {
				doc.Images = append(doc.Images, img)
				continue
			}
			doc.Images = append(doc.Images, inlineImages(node, body)...)
			if s := inlineText(node, body); s != "" {
				doc.Paragraphs = append(doc.Paragraphs, s)
			}
		case *ast.Heading:
			if s := inlineText(node, body); s != "" {
				doc.Paragraphs = append(doc.Paragraphs, s)
			}
		case *ast.FencedCodeBlock:
			doc.Code = append(doc.Code, codeBlock{
				Language: string(node.Language(body)),
				Code:     blockLines(node, body),
			})
		case *ast.CodeBlock:
			doc.Code = append(doc.Code, codeBlock{Code: blockLines(node, body)})
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if s := inlineText(item, body); s != "" {
					doc.Paragraphs = append(doc.Paragraphs, "• "+s)
				}
			}
		case *ast.Blockquote:
			if s := inlineText(node, body); s != "" {
				doc.Paragraphs = append(doc.Paragraphs, "> "+s)
			}
		}
	}
	return doc
}

// standaloneImage matches a paragraph holding nothing but one image
func standaloneImage(p *ast.Paragraph, src []byte) (imageRef, bool) {
	var img *ast.Image
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Image:
			if img != nil {
				return imageRef{}, false
			}
			img = v
		case *ast.Text:
			if strings.TrimSpace(string(v.Segment.Value(src))) != "" {
				return imageRef{}, false
			}
		default:
			return imageRef{}, false
		}
	}
	if img == nil || p.Lines().Len() == 0 {
		return imageRef{}, false
	}
	lines := p.Lines()
	return imageRef{
		Src:        string(img.Destination),
		Alt:        inlineText(img, src),
		Standalone: true,
		start:      lines.At(0).Start,
		stop:       lines.At(lines.Len() - 1).Stop,
	}, true
}

func inlineImages(n ast.Node, src []byte) []imageRef {
	var out []imageRef
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := c.(*ast.Image); ok {
			out = append(out, imageRef{Src: string(img.Destination), Alt: inlineText(img, src)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// inlineText flattens the text content of n, joining soft breaks with spaces
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.Image:
			if c != n {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Paragraph, *ast.TextBlock:
			if sb.Len() > 0 && c != n {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
