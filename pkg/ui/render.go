package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-Harshit/bloglabs/pkg/model"
	"github.com/Coder-Harshit/bloglabs/pkg/settings"
)

// MainMenu is the fixed list of main menu entries, in order.
var MainMenu = []string{
	"📚 Blogs",
	"👤 About Me",
	"🚀 Projects",
	"⚙️  Settings",
	"🔄 Reboot System",
}

// Main menu indexes
const (
	MenuBlogs = iota
	MenuAbout
	MenuProjects
	MenuSettings
	MenuReboot
)

// ViewRenderer turns content into DisplayLines. It holds only the
// presentation preferences, so the same inputs always give the same lines.
type ViewRenderer struct {
	r            *lipgloss.Renderer
	codeStyle    string
	showWelcome  bool
	lineNumbers  bool
	rainbow      bool
	imageDisplay string
}

// NewViewRenderer captures the presentation preferences from s and theme
func NewViewRenderer(theme Theme, s *settings.Settings) ViewRenderer {
	vr := ViewRenderer{
		r:            theme.Renderer,
		codeStyle:    theme.CodeStyle,
		showWelcome:  true,
		rainbow:      true,
		imageDisplay: "ascii",
	}
	if vr.r == nil {
		vr.r = lipgloss.DefaultRenderer()
	}
	if s != nil {
		vr.showWelcome = s.Bool(settings.KeyShowWelcome)
		vr.lineNumbers = s.Bool(settings.KeyShowLineNumbers)
		vr.rainbow = s.Bool(settings.KeyEnableAnimations)
		vr.imageDisplay = s.String(settings.KeyImageDisplay)
	}
	return vr
}

// Lines renders the view the navigator is on
func (vr ViewRenderer) Lines(nav *Navigator, bundle *model.Bundle, s *settings.Settings) []DisplayLine {
	switch nav.View() {
	case ViewMain:
		return vr.Main(nav.Selected())
	case ViewBlogList:
		return vr.BlogList(postsOf(bundle), nav.Selected())
	case ViewBlogDetail:
		post, _ := bundle.PostBySlug(nav.BlogSlug())
		return vr.BlogPost(post)
	case ViewAbout:
		about := model.AboutContent{Title: "About Me"}
		if bundle != nil {
			about = bundle.About
		}
		return vr.About(about)
	case ViewProjectList:
		return vr.ProjectList(projectsOf(bundle), nav.Selected())
	case ViewProjectDetail:
		project, _ := bundle.ProjectAt(nav.ProjectIndex())
		return vr.Project(project)
	case ViewSettings:
		var opts []settings.Option
		if s != nil {
			opts = s.Options()
		}
		return vr.Settings(opts, nav.Selected())
	}
	return nil
}

func postsOf(b *model.Bundle) []model.BlogPost {
	if b == nil {
		return nil
	}
	return b.Posts
}

func projectsOf(b *model.Bundle) []model.Project {
	if b == nil {
		return nil
	}
	return b.Projects
}

// Welcome renders the banner and help panels shown above the main menu
func (vr ViewRenderer) Welcome() []DisplayLine {
	var lines []DisplayLine
	for _, row := range welcomeBox("Welcome to BlogLabs!", "Terminal Interface v2.0") {
		lines = append(lines, DisplayLine{Role: RoleWelcome, Value: row})
	}
	lines = append(lines,
		blank(),
		text(thinTop("Navigation", panelWidth)),
		text(thinRow("↑↓ arrows or j/k    Navigate menus", panelWidth)),
		text(thinRow("Enter or l          Select/Open", panelWidth)),
		text(thinRow("Backspace or c      Go back", panelWidth)),
		text(thinRow("Esc                 Main menu", panelWidth)),
		text(thinBottom(panelWidth)),
		blank(),
		text(thinTop("Quick Access", panelWidth)),
		text(thinRow("B - Blogs    A - About    P - Projects", panelWidth)),
		text(thinRow("S - Settings G - GitHub   Q - Quit", panelWidth)),
		text(thinBottom(panelWidth)),
		blank(),
		DisplayLine{Role: RolePrompt, Value: "Select an option below to continue:"},
		blank(),
	)
	return lines
}

// Main renders the main menu, with the welcome screen when enabled
func (vr ViewRenderer) Main(selected int) []DisplayLine {
	var lines []DisplayLine
	if vr.showWelcome {
		lines = vr.Welcome()
	}
	for i, entry := range MainMenu {
		marker := "  "
		if i == selected {
			marker = "▶ "
		}
		lines = append(lines, option(marker+entry, i, i == selected))
	}
	return lines
}

// BlogList renders the post list with a summary of the selected post
func (vr ViewRenderer) BlogList(posts []model.BlogPost, selected int) []DisplayLine {
	lines := []DisplayLine{title(boxTop("Blog Posts")), text(boxBlank())}
	if len(posts) == 0 {
		lines = append(lines, text(boxRow("No posts published yet.")))
	}
	for i, p := range posts {
		date := "(" + p.Date + ")"
		t := p.Title
		if displayWidth(t)+displayWidth(date) > listTitleWidth {
			t = truncate(t, listTitleWidth-displayWidth(date))
		}
		lines = append(lines, option(selectRow(t+" "+date, i == selected), i, i == selected))
	}
	lines = append(lines, text(boxBlank()), text(boxBottom()), blank())

	if selected >= 0 && selected < len(posts) {
		lines = append(lines, title(boxTop("Summary")))
		summary := wrapWords(posts[selected].Summary, panelInner)
		if len(summary) == 0 {
			summary = []string{""}
		}
		for _, row := range summary {
			lines = append(lines, text(boxRow(row)))
		}
		lines = append(lines, text(boxBottom()), blank())
	}
	return lines
}

// BlogPost renders a full post. A nil post renders the not-found error.
func (vr ViewRenderer) BlogPost(post *model.BlogPost) []DisplayLine {
	if post == nil {
		return []DisplayLine{{Role: RoleError, Value: "✗ Error: Blog not found."}}
	}
	rows := []string{"Author: " + post.Author, "Date: " + post.Date}
	if len(post.Tags) > 0 {
		rows = append(rows, "Tags: "+strings.Join(post.Tags, ", "))
	}
	// header widens to fit the title and byline
	width := fitWidth(post.Title, rows...)
	lines := []DisplayLine{title(boxTopWidth(post.Title, width))}
	for _, r := range rows {
		lines = append(lines, text(boxRowWidth(r, width)))
	}
	lines = append(lines, text(boxBottomWidth(width)), blank())

	for _, para := range post.Paragraphs {
		for _, row := range wrapWords(para, wrapWidth) {
			lines = append(lines, text(row))
		}
		lines = append(lines, blank())
	}

	if media := vr.fragments(post.Media); len(media) > 0 {
		lines = append(lines, title(boxTop("Media")), blank())
		lines = append(lines, media...)
	}

	if len(post.CodeBlocks) > 0 {
		lines = append(lines, title(boxTop("Code Examples")), blank())
		for i, cb := range post.CodeBlocks {
			lines = append(lines, codeBox(cb, vr.codeStyle, vr.lineNumbers)...)
			if i < len(post.CodeBlocks)-1 {
				lines = append(lines, blank())
			}
		}
	}
	return lines
}

// About renders the about page
func (vr ViewRenderer) About(about model.AboutContent) []DisplayLine {
	lines := []DisplayLine{title(boxTop(about.Title)), blank()}
	lines = append(lines, vr.fragments(about.Body)...)
	lines = append(lines, text(boxBottom()), blank())
	return lines
}

// ProjectList renders the projects with rainbow names
func (vr ViewRenderer) ProjectList(projects []model.Project, selected int) []DisplayLine {
	lines := []DisplayLine{title(boxTop("My Projects")), text(boxBlank())}
	if len(projects) == 0 {
		lines = append(lines, text(boxRow("No projects to display yet.")))
	}
	for i, p := range projects {
		isSel := i == selected
		marker := "  "
		if isSel {
			marker = "▶ "
		}
		name := truncate(p.Name, panelInner-2)
		row := "│ " + marker + vr.decorate(name) + strings.Repeat(" ", panelInner-2-displayWidth(name)) + " │"
		line := option(row, i, isSel)
		if !isSel {
			line.Role = RoleMarkup
		}
		lines = append(lines, line)

		desc := p.Description
		if displayWidth(desc) > descWidth {
			desc = truncate(desc, descWidth)
		}
		lines = append(lines, text(boxRow("    "+desc)), text(boxBlank()))
	}
	lines = append(lines, text(boxBottom()), blank())
	return lines
}

// Project renders one project. A nil project renders the not-found error.
func (vr ViewRenderer) Project(p *model.Project) []DisplayLine {
	if p == nil {
		return []DisplayLine{{Role: RoleError, Value: "✗ Error: Project not found."}}
	}
	name := truncate(p.Name, panelWidth-8)
	header := "╭─ " + vr.decorate(name) + " " + strings.Repeat("─", panelWidth-5-displayWidth(name)) + "╮"
	lines := []DisplayLine{
		{Role: RoleMarkup, Value: header},
		blank(),
		text("📝 " + p.Description),
		text("🔗 " + p.GitHubURL),
	}
	if p.LiveURL != "" {
		lines = append(lines, text("🌐 "+p.LiveURL))
	}
	lines = append(lines, blank())

	if body := vr.fragments(p.Body); len(body) > 0 {
		lines = append(lines, title(boxTop("Details")), blank())
		lines = append(lines, body...)
	} else {
		lines = append(lines, text("(No additional details provided)"), blank())
	}
	lines = append(lines, text(boxBottom()), blank())
	return lines
}

// Settings renders the option list and the info box for the selection
func (vr ViewRenderer) Settings(opts []settings.Option, selected int) []DisplayLine {
	lines := []DisplayLine{title(boxTop("Settings")), text(boxBlank())}
	for i, o := range opts {
		lines = append(lines, option(selectRow(padRight(o.Label, 20)+" "+indicator(o), i == selected), i, i == selected))
	}
	lines = append(lines, text(boxBlank()), text(boxBottom()), blank())

	if selected >= 0 && selected < len(opts) {
		info := opts[selected].Info
		if info == "" {
			info = "Press Enter to modify this setting"
		}
		lines = append(lines, title(boxTop("Setting Info")))
		for _, row := range wrapWords(info, panelInner) {
			lines = append(lines, text(boxRow(row)))
		}
		lines = append(lines, text(boxBottom()))
	}
	return lines
}

// indicator renders [X]/[ ] for booleans and [value] for selects
func indicator(o settings.Option) string {
	if o.Kind == settings.KindBool {
		if o.BoolValue() {
			return "[X]"
		}
		return "[ ]"
	}
	v := o.StringValue()
	if v == "" {
		v = "N/A"
	}
	return "[" + v + "]"
}

func (vr ViewRenderer) decorate(s string) string {
	if !vr.rainbow {
		return s
	}
	return lolcat(vr.r, s)
}

// fragments renders body fragments honoring the media display preference
func (vr ViewRenderer) fragments(frags []model.Fragment) []DisplayLine {
	var lines []DisplayLine
	for _, f := range frags {
		switch {
		case f.IsImage():
			lines = append(lines, vr.image(f)...)
		case f.Kind == model.FragmentMarkup && strings.TrimSpace(f.Markup) != "":
			lines = append(lines, DisplayLine{Role: RoleMarkup, Value: f.Markup}, blank())
		}
	}
	return lines
}

func (vr ViewRenderer) image(f model.Fragment) []DisplayLine {
	label := f.Alt
	if label == "" {
		label = f.Src
	}
	switch vr.imageDisplay {
	case "none":
		return nil
	case "full":
		var lines []DisplayLine
		if f.Kind == model.FragmentASCIIArt {
			lines = append(lines, DisplayLine{Role: RoleMarkup, Value: f.Art})
		}
		return append(lines, text("🖼  "+label+" <"+f.Src+">"), blank())
	default:
		if f.Kind == model.FragmentASCIIArt {
			return []DisplayLine{{Role: RoleMarkup, Value: f.Art}, blank()}
		}
		return []DisplayLine{text("[image: " + label + "]"), blank()}
	}
}
