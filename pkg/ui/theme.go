package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors and base styles for one theme mode
type Theme struct {
	Renderer *lipgloss.Renderer
	Mode     string

	// Colors
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Subtext   lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Welcome   lipgloss.TerminalColor

	// UI Elements
	Border    lipgloss.TerminalColor
	Highlight lipgloss.TerminalColor

	// CodeStyle is the chroma style used for code blocks
	CodeStyle string

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
}

// ThemeForMode builds the theme for a themeMode setting value. Unknown
// modes fall back to the terminal palette.
func ThemeForMode(r *lipgloss.Renderer, mode string) Theme {
	var t Theme
	switch mode {
	case "light":
		t = Theme{
			Renderer:  r,
			Mode:      mode,
			Primary:   lipgloss.Color("#7D56F4"),
			Secondary: lipgloss.Color("#555555"),
			Subtext:   lipgloss.Color("#333333"),
			Muted:     lipgloss.Color("#999999"),
			Error:     lipgloss.Color("#D80000"),
			Welcome:   lipgloss.Color("#007EA8"),
			Border:    lipgloss.Color("#DDDDDD"),
			Highlight: lipgloss.Color("#EEEEEE"),
			CodeStyle: "github",
		}
		t.Base = r.NewStyle().Foreground(lipgloss.Color("#1A1A1A"))
	case "dark":
		// Dracula
		t = Theme{
			Renderer:  r,
			Mode:      mode,
			Primary:   lipgloss.Color("#BD93F9"),
			Secondary: lipgloss.Color("#6272A4"),
			Subtext:   lipgloss.Color("#BFBFBF"),
			Muted:     lipgloss.Color("#6272A4"),
			Error:     lipgloss.Color("#FF5555"),
			Welcome:   lipgloss.Color("#8BE9FD"),
			Border:    lipgloss.Color("#44475A"),
			Highlight: lipgloss.Color("#44475A"),
			CodeStyle: "dracula",
		}
		t.Base = r.NewStyle().Foreground(lipgloss.Color("#F8F8F2"))
	default:
		t = Theme{
			Renderer:  r,
			Mode:      "terminal",
			Primary:   lipgloss.Color("#33FF66"),
			Secondary: lipgloss.Color("#1F9D45"),
			Subtext:   lipgloss.Color("#7CFC9A"),
			Muted:     lipgloss.Color("#2E7D46"),
			Error:     lipgloss.Color("#FF5555"),
			Welcome:   lipgloss.Color("#00FF41"),
			Border:    lipgloss.Color("#1F9D45"),
			Highlight: lipgloss.Color("#0B3D1A"),
			CodeStyle: "monokai",
		}
		t.Base = r.NewStyle().Foreground(lipgloss.Color("#33FF66"))
	}

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Foreground(t.Primary).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}).
		Bold(true).
		Padding(0, 1)

	return t
}

// StyleLine renders a DisplayLine according to its role
func (t Theme) StyleLine(l DisplayLine) string {
	r := t.Renderer
	switch l.Role {
	case RoleHighlight:
		return t.Selected.Render(l.Value)
	case RoleTitle:
		return r.NewStyle().Foreground(t.Primary).Bold(true).Render(l.Value)
	case RoleMarkup:
		return l.Value
	case RoleError:
		return r.NewStyle().Foreground(t.Error).Bold(true).Render(l.Value)
	case RoleWelcome:
		return r.NewStyle().Foreground(t.Welcome).Bold(true).Render(l.Value)
	case RolePrompt:
		return r.NewStyle().Foreground(t.Subtext).Italic(true).Render(l.Value)
	default:
		if l.Value == "" {
			return ""
		}
		return t.Base.Render(l.Value)
	}
}
