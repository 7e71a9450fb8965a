package content

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns markdown into styled terminal markup with glamour.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdownRenderer creates a renderer wrapping at width. style is a glamour
// standard style name ("dark", "light", "dracula", "notty"); empty means dark.
func NewMarkdownRenderer(width int, style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	mr := &MarkdownRenderer{width: width, style: style}
	mr.renderer = newTermRenderer(width, style)
	return mr
}

func newTermRenderer(width int, style string) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Render returns styled markup, or the raw markdown if no renderer is available.
func (mr *MarkdownRenderer) Render(markdown string) (string, error) {
	if mr.renderer == nil {
		return markdown, nil
	}
	return mr.renderer.Render(markdown)
}

// SetWidth rebuilds the renderer when the wrap width changes.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width == mr.width {
		return
	}
	mr.width = width
	mr.renderer = newTermRenderer(width, mr.style)
}
