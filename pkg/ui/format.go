package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// panelWidth is the outer width of every boxed panel.
	panelWidth = 44
	// panelInner is the text width between "│ " and " │".
	panelInner = panelWidth - 4
	// wrapWidth is the paragraph column limit in detail views.
	wrapWidth = 70
	// listTitleWidth bounds "title (date)" in the blog list.
	listTitleWidth = 36
	// descWidth bounds project descriptions in the project list.
	descWidth = 34
)

// displayWidth returns the terminal cell width of s
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// padRight pads s with spaces to width cells. Longer strings are returned
// unchanged.
func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate keeps the head of s so that it fits in width cells, ending with
// "..." when anything was cut.
func truncate(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// wrapWords breaks s on whitespace into lines of at most width cells.
// Words are never split; a word wider than width sits on its own line.
func wrapWords(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range words {
		ww := displayWidth(word)
		switch {
		case curW == 0:
			cur.WriteString(word)
			curW = ww
		case curW+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + ww
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			curW = ww
		}
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// boxTop renders "╭─ label ───╮" at panel width
func boxTop(label string) string {
	return boxTopWidth(truncate(label, panelWidth-8), panelWidth)
}

func boxTopWidth(label string, width int) string {
	dashes := width - 5 - displayWidth(label)
	if dashes < 1 {
		dashes = 1
	}
	return "╭─ " + label + " " + strings.Repeat("─", dashes) + "╮"
}

func boxBottom() string {
	return boxBottomWidth(panelWidth)
}

func boxBottomWidth(width int) string {
	return "╰" + strings.Repeat("─", width-2) + "╯"
}

func boxBlank() string {
	return "│" + strings.Repeat(" ", panelWidth-2) + "│"
}

// boxRow renders "│ content │", padding content or shortening it with "..."
func boxRow(content string) string {
	return boxRowWidth(truncate(content, panelInner), panelWidth)
}

func boxRowWidth(content string, width int) string {
	return "│ " + padRight(content, width-4) + " │"
}

// fitWidth is the panel width that holds label in a box top and every row
// unclipped, never narrower than panelWidth.
func fitWidth(label string, rows ...string) int {
	width := max(panelWidth, displayWidth(label)+6)
	for _, r := range rows {
		width = max(width, displayWidth(r)+4)
	}
	return width
}

// selectRow renders a selectable panel row with the ▶ marker
func selectRow(content string, selected bool) string {
	marker := "  "
	if selected {
		marker = "▶ "
	}
	return boxRow(marker + content)
}

// welcomeBox renders a double-line banner of centered rows
func welcomeBox(rows ...string) []string {
	inner := panelWidth - 2
	out := []string{"╔" + strings.Repeat("═", inner) + "╗"}
	for _, r := range rows {
		w := displayWidth(r)
		left := (inner - w) / 2
		if left < 0 {
			left = 0
		}
		out = append(out, "║"+padRight(strings.Repeat(" ", left)+r, inner)+"║")
	}
	out = append(out, "╚"+strings.Repeat("═", inner)+"╝")
	return out
}

// thinTop opens a single-line labelled box, used for the welcome help
// panels and code blocks.
func thinTop(label string, width int) string {
	dashes := width - 5 - displayWidth(label)
	if dashes < 1 {
		dashes = 1
	}
	return "┌─ " + label + " " + strings.Repeat("─", dashes) + "┐"
}

func thinBottom(width int) string {
	return "└" + strings.Repeat("─", width-2) + "┘"
}

func thinRow(content string, width int) string {
	inner := width - 4
	return "│ " + padRight(truncate(content, inner), inner) + " │"
}
