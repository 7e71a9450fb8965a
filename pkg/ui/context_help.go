package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ContextHelpContent holds the compact help shown by ? for each view.
// Content should fit on one screen without scrolling.
var ContextHelpContent = map[View]string{
	ViewMain:          contextHelpMain,
	ViewBlogList:      contextHelpList,
	ViewProjectList:   contextHelpList,
	ViewBlogDetail:    contextHelpDetail,
	ViewAbout:         contextHelpDetail,
	ViewProjectDetail: contextHelpProject,
	ViewSettings:      contextHelpSettings,
}

// GetContextHelp returns the help content for a view.
// Falls back to generic help if the view has no specific content.
func GetContextHelp(v View) string {
	if content, ok := ContextHelpContent[v]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the help modal for a view
func RenderContextHelp(v View, theme Theme, width, height int) string {
	content := GetContextHelp(v)

	r := theme.Renderer

	modalWidth := 52
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Press ? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}

const contextHelpMain = `Main Menu

  ↑↓ / j k    Move selection
  Enter / l   Open entry
  b a p s     Blogs, About, Projects, Settings
  g           Open the repository
  r           Reboot
  ctrl+r      Reload content
  q           Quit`

const contextHelpList = `List

  ↑↓ / j k    Move selection (wraps)
  Enter / l   Open entry
  Backspace   Back
  Esc         Main menu`

const contextHelpDetail = `Reading

  ↑↓ / j k    Scroll
  ←→ / h l    Scroll sideways
  PgUp PgDn   Page
  Backspace   Back
  Esc         Main menu`

const contextHelpProject = `Project

  ↑↓ / j k    Scroll
  ←→ / h l    Scroll sideways
  y           Copy repository link
  Backspace   Back
  Esc         Main menu`

const contextHelpSettings = `Settings

  ↑↓ / j k    Move selection
  Enter / l   Toggle or cycle value
  Changes are saved immediately.`

const contextHelpGeneric = `  Backspace   Back
  Esc         Main menu
  q           Quit`
