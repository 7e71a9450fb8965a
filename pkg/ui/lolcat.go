package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// rainbow is the lolcat gradient, red through magenta back to red.
var rainbow = []string{
	"#ff0000", "#ff4000", "#ff8000", "#ffbf00",
	"#ffff00", "#bfff00", "#80ff00", "#40ff00",
	"#00ff00", "#00ff40", "#00ff80", "#00ffbf",
	"#00ffff", "#00bfff", "#0080ff", "#0040ff",
	"#0000ff", "#4000ff", "#8000ff", "#bf00ff",
	"#ff00ff", "#ff00bf", "#ff0080", "#ff0040",
}

// lolcat colors s with the rainbow gradient stretched across its runes.
// The result is deterministic for a given renderer and input.
func lolcat(r *lipgloss.Renderer, s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	var sb strings.Builder
	last := len(runes) - 1
	for i, ch := range runes {
		idx := 0
		if last > 0 {
			idx = i * (len(rainbow) - 1) / last
		}
		sb.WriteString(r.NewStyle().Foreground(lipgloss.Color(rainbow[idx])).Render(string(ch)))
	}
	return sb.String()
}
