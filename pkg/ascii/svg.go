package ascii

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGOptions controls RenderSVG output
type SVGOptions struct {
	FontSize   int
	FontFamily string // tried first, monospace is always the fallback
	Foreground string
	Background string
}

// RenderSVG writes art as an SVG document of monospace text rows.
func RenderSVG(w io.Writer, art string, opts SVGOptions) error {
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.Foreground == "" {
		opts.Foreground = "#33ff66"
	}
	if opts.Background == "" {
		opts.Background = "#000000"
	}

	rows := strings.Split(art, "\n")
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return fmt.Errorf("nothing to render")
	}

	// Monospace glyphs are roughly 0.6em wide.
	charW := float64(opts.FontSize) * 0.6
	lineH := opts.FontSize
	width := int(charW*float64(cols)) + opts.FontSize
	height := lineH*len(rows) + opts.FontSize

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+opts.Background)
	family := "monospace"
	if opts.FontFamily != "" {
		family = fmt.Sprintf("'%s',monospace", opts.FontFamily)
	}
	textStyle := fmt.Sprintf("font-family:%s;font-size:%dpx;fill:%s", family, opts.FontSize, opts.Foreground)
	for i, r := range rows {
		y := opts.FontSize/2 + lineH*(i+1)
		canvas.Text(opts.FontSize/2, y, r, `xml:space="preserve"`, textStyle)
	}
	canvas.End()
	return nil
}
