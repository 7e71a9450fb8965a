package ui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/Coder-Harshit/bloglabs/pkg/model"
)

const codeBoxMinWidth = 40

// codeBox renders a code block as a titled box. Every source line is padded
// to the longest line before highlighting so the box stays rectangular.
func codeBox(block model.CodeBlock, styleName string, lineNumbers bool) []DisplayLine {
	src := strings.ReplaceAll(block.Code, "\t", "    ")
	rows := strings.Split(strings.TrimRight(src, "\n"), "\n")

	longest := 0
	for _, r := range rows {
		if w := displayWidth(r); w > longest {
			longest = w
		}
	}
	padded := make([]string, len(rows))
	for i, r := range rows {
		padded[i] = padRight(r, longest)
	}

	gutter := 0
	if lineNumbers {
		gutter = len(fmt.Sprint(len(rows))) + 1
	}
	width := longest + gutter + 4
	if width < codeBoxMinWidth {
		width = codeBoxMinWidth
	}
	inner := width - 4

	highlighted := highlightLines(strings.Join(padded, "\n"), block.Language, styleName, len(rows))

	var body strings.Builder
	for i, h := range highlighted {
		if i > 0 {
			body.WriteByte('\n')
		}
		prefix := ""
		if lineNumbers {
			prefix = fmt.Sprintf("%*d ", gutter-1, i+1)
		}
		fill := inner - gutter - longest
		body.WriteString("│ " + prefix + h + strings.Repeat(" ", fill) + " │")
	}

	label := strings.ToUpper(block.Language)
	if label == "" {
		label = "TEXT"
	}
	return []DisplayLine{
		text(thinTop(label, width)),
		{Role: RoleMarkup, Value: body.String()},
		text(thinBottom(width)),
	}
}

// highlightLines runs chroma over src and returns exactly n formatted rows.
// Tokens are split per line so no escape sequence spans a row boundary.
func highlightLines(src, language, styleName string, n int) []string {
	plain := strings.Split(src, "\n")

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Get("javascript")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return plain[:n]
	}

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plain[:n]
	}

	out := make([]string, 0, n)
	for _, lineTokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		if len(out) == n {
			break
		}
		var sb strings.Builder
		var stripped []chroma.Token
		for _, tok := range lineTokens {
			tok.Value = strings.TrimSuffix(tok.Value, "\n")
			if tok.Value != "" {
				stripped = append(stripped, tok)
			}
		}
		if err := formatter.Format(&sb, style, chroma.Literator(stripped...)); err != nil {
			return plain[:n]
		}
		out = append(out, sb.String())
	}
	for len(out) < n {
		out = append(out, plain[len(out)])
	}
	return out
}
