package ui

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-Harshit/bloglabs/pkg/model"
	"github.com/Coder-Harshit/bloglabs/pkg/settings"
)

// DefaultRepoURL is opened by the GitHub shortcut
const DefaultRepoURL = "https://github.com/Coder-Harshit/bloglabs"

const (
	headerHeight = 2
	footerHeight = 2

	cursorHideDelay = 2 * time.Second
)

// RebootMsg asks the application to replay the boot sequence
type RebootMsg struct{}

// cursorHideMsg hides the pointer indicator unless the pointer moved again
type cursorHideMsg struct{ gen int }

// contentSource answers selectable-entry counts for the navigator
type contentSource struct {
	bundle   *model.Bundle
	settings *settings.Settings
}

// NewContentSource returns the Source backed by a bundle and settings
func NewContentSource(b *model.Bundle, s *settings.Settings) Source {
	return contentSource{bundle: b, settings: s}
}

func (s contentSource) Count(v View) int {
	switch v {
	case ViewMain:
		return len(MainMenu)
	case ViewBlogList:
		return len(postsOf(s.bundle))
	case ViewProjectList:
		return len(projectsOf(s.bundle))
	case ViewSettings:
		if s.settings == nil {
			return 0
		}
		return s.settings.Len()
	}
	return 0
}

func (s contentSource) SlugAt(i int) string {
	posts := postsOf(s.bundle)
	if i < 0 || i >= len(posts) {
		return ""
	}
	return posts[i].Slug
}

// TerminalConfig configures a TerminalModel
type TerminalConfig struct {
	Bundle   *model.Bundle
	Settings *settings.Settings
	Renderer *lipgloss.Renderer
	RepoURL  string
	SiteURL  string // when set, y in a post copies SiteURL/blog/<slug>
	Touch    bool
	Opener   *LinkOpener
	Worker   *ContentWorker // rebuilds content on ctrl+r when set
}

// TerminalModel is the interactive shell: navigation, rendering into a
// scrollable viewport, and keyboard and pointer routing.
type TerminalModel struct {
	nav      *Navigator
	bundle   *model.Bundle
	settings *settings.Settings

	lr       *lipgloss.Renderer
	theme    Theme
	renderer ViewRenderer
	keys     keyMap

	viewport  viewport.Model
	lines     []DisplayLine
	rowStarts []int
	lastView  View
	ready     bool
	width     int
	height    int

	touch   bool
	repoURL string
	siteURL string
	opener  *LinkOpener
	worker  *ContentWorker

	showHelp bool
	status   string

	cursorVisible bool
	cursorGen     int
	cursorX       int
	cursorY       int
}

// NewTerminalModel builds the shell on the main menu
func NewTerminalModel(cfg TerminalConfig) TerminalModel {
	lr := cfg.Renderer
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	s := cfg.Settings
	if s == nil {
		s = settings.Load(settings.NewMemoryStore(nil))
	}
	repo := cfg.RepoURL
	if repo == "" {
		repo = DefaultRepoURL
	}
	opener := cfg.Opener
	if opener == nil {
		opener = NewLinkOpener()
	}

	m := TerminalModel{
		bundle:   cfg.Bundle,
		settings: s,
		lr:       lr,
		keys:     newKeyMap(),
		touch:    cfg.Touch,
		repoURL:  repo,
		siteURL:  strings.TrimSuffix(cfg.SiteURL, "/"),
		opener:   opener,
		worker:   cfg.Worker,
		viewport: viewport.New(80, 20),
	}
	m.viewport.SetHorizontalStep(4)
	m.nav = NewNavigator(contentSource{bundle: m.bundle, settings: m.settings})
	m.applySettings()
	return m
}

func (m TerminalModel) Init() tea.Cmd { return nil }

// Navigator exposes the state machine, mainly for tests
func (m TerminalModel) Navigator() *Navigator { return m.nav }

// Lines returns the display lines of the current view
func (m TerminalModel) Lines() []DisplayLine { return m.lines }

// Viewport exposes the scroll surface
func (m TerminalModel) Viewport() viewport.Model { return m.viewport }

// Status is the transient message shown above the key bar
func (m TerminalModel) Status() string { return m.status }

// SetBundle swaps in new content, keeping the current view where possible
func (m TerminalModel) SetBundle(b *model.Bundle) TerminalModel {
	m.bundle = b
	m.nav.SetSource(contentSource{bundle: b, settings: m.settings})
	m.status = "Content reloaded"
	m.refresh()
	return m
}

// Reset returns to the main menu, as after a reboot
func (m TerminalModel) Reset() TerminalModel {
	m.nav.Home()
	m.showHelp = false
	m.status = ""
	m.refresh()
	return m
}

// OpenView jumps to a top-level view from main
func (m TerminalModel) OpenView(v View) TerminalModel {
	m.nav.Open(v)
	m.refresh()
	return m
}

func (m *TerminalModel) applySettings() {
	m.theme = ThemeForMode(m.lr, m.settings.String(settings.KeyThemeMode))
	m.renderer = NewViewRenderer(m.theme, m.settings)
	m.refresh()
}

// refresh re-renders the current view into the viewport
func (m *TerminalModel) refresh() {
	m.lines = m.renderer.Lines(m.nav, m.bundle, m.settings)

	var b strings.Builder
	m.rowStarts = make([]int, 0, len(m.lines)+1)
	row := 0
	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		styled := m.theme.StyleLine(l)
		m.rowStarts = append(m.rowStarts, row)
		row += strings.Count(styled, "\n") + 1
		b.WriteString(styled)
	}
	m.rowStarts = append(m.rowStarts, row)
	m.viewport.SetContent(b.String())

	if v := m.nav.View(); v != m.lastView {
		m.viewport.GotoTop()
		m.viewport.SetXOffset(0)
		m.lastView = v
	}
	m.ensureVisible()
}

// ensureVisible scrolls so the selected entry is on screen
func (m *TerminalModel) ensureVisible() {
	if m.nav.View().IsScrollable() {
		return
	}
	for i, l := range m.lines {
		if !l.Interactive || l.OptionIndex != m.nav.Selected() {
			continue
		}
		top := m.rowStarts[i]
		bottom := m.rowStarts[i+1]
		switch {
		case top < m.viewport.YOffset:
			m.viewport.SetYOffset(top)
		case bottom > m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(bottom - m.viewport.Height)
		}
		return
	}
}

// lineAtRow maps a content row to the display line that covers it
func (m TerminalModel) lineAtRow(row int) (DisplayLine, bool) {
	for i := range m.lines {
		if row >= m.rowStarts[i] && row < m.rowStarts[i+1] {
			return m.lines[i], true
		}
	}
	return DisplayLine{}, false
}

func (m TerminalModel) Update(msg tea.Msg) (TerminalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = h
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case cursorHideMsg:
		if msg.gen == m.cursorGen {
			m.cursorVisible = false
		}
		return m, nil

	case OpenResultMsg:
		if msg.Success {
			m.status = "Opened " + msg.URL
		} else {
			log.Printf("terminal: open %s: %v", msg.URL, msg.Error)
			m.status = "Could not open browser: " + msg.URL
		}
		return m, nil

	case CopyResultMsg:
		if msg.Error != nil {
			log.Printf("terminal: clipboard: %v", msg.Error)
			m.status = "Clipboard unavailable"
		} else {
			m.status = "Copied " + msg.Text
		}
		return m, nil
	}
	return m, nil
}

func (m TerminalModel) handleKey(msg tea.KeyMsg) (TerminalModel, tea.Cmd) {
	if key.Matches(msg, m.keys.forceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.help, m.keys.home, m.keys.back) {
			m.showHelp = false
		}
		return m, nil
	}
	m.status = ""
	view := m.nav.View()

	if view.IsScrollable() {
		switch {
		case key.Matches(msg, m.keys.down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keys.up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keys.right):
			m.viewport.ScrollRight(4)
			return m, nil
		case key.Matches(msg, m.keys.left):
			m.viewport.ScrollLeft(4)
			return m, nil
		case key.Matches(msg, m.keys.pageDown):
			m.viewport.PageDown()
			return m, nil
		case key.Matches(msg, m.keys.pageUp):
			m.viewport.PageUp()
			return m, nil
		case key.Matches(msg, m.keys.top):
			m.viewport.GotoTop()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.nav.Back()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.home):
		if view != ViewMain {
			m.nav.Home()
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.github):
		return m, m.opener.Open(m.repoURL)
	case key.Matches(msg, m.keys.copyLink):
		return m, copyLink(m.currentLink())
	case key.Matches(msg, m.keys.reload):
		if m.worker == nil {
			m.status = "Content reload needs a content directory"
			return m, nil
		}
		m.worker.TriggerRefresh()
		m.status = "Checking content for changes..."
		return m, nil
	}

	if view == ViewMain {
		var target View = -1
		switch {
		case key.Matches(msg, m.keys.blogs):
			target = ViewBlogList
		case key.Matches(msg, m.keys.about):
			target = ViewAbout
		case key.Matches(msg, m.keys.projects):
			target = ViewProjectList
		case key.Matches(msg, m.keys.settings):
			target = ViewSettings
		case key.Matches(msg, m.keys.reboot):
			return m, reboot
		}
		if target >= 0 {
			m.nav.Jump(target)
			m.refresh()
			return m, nil
		}
	}

	if view.IsScrollable() {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.up):
		m.nav.Up()
		m.refresh()
	case key.Matches(msg, m.keys.down):
		m.nav.Down()
		m.refresh()
	case key.Matches(msg, m.keys.enter):
		return m.activate(m.nav.Selected())
	}
	return m, nil
}

func reboot() tea.Msg { return RebootMsg{} }

// activate performs entry i of the current view and any side effect it asks for
func (m TerminalModel) activate(i int) (TerminalModel, tea.Cmd) {
	action := m.nav.Activate(i)
	switch action.Kind {
	case ActionReboot:
		return m, reboot
	case ActionSetting:
		if err := m.settings.Activate(action.Index); err != nil {
			log.Printf("terminal: %v", err)
		}
		m.applySettings()
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m TerminalModel) handleMouse(msg tea.MouseMsg) (TerminalModel, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
		return m, nil
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
		return m, nil
	}

	if !m.touch {
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		m.cursorVisible = true
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.cursorGen++
		gen := m.cursorGen
		return m, tea.Tick(cursorHideDelay, func(time.Time) tea.Msg {
			return cursorHideMsg{gen: gen}
		})
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || m.showHelp {
		return m, nil
	}
	row := msg.Y - headerHeight + m.viewport.YOffset
	if msg.Y < headerHeight || msg.Y >= headerHeight+m.viewport.Height {
		return m, nil
	}
	line, ok := m.lineAtRow(row)
	if !ok || !line.Interactive {
		return m, nil
	}
	return m.activate(line.OptionIndex)
}

// currentLink is what y copies: the open post's page or project's
// repository, otherwise the site repository.
func (m TerminalModel) currentLink() string {
	if m.nav.View() == ViewBlogDetail && m.siteURL != "" && m.nav.BlogSlug() != "" {
		return m.siteURL + "/blog/" + m.nav.BlogSlug()
	}
	if m.nav.View() == ViewProjectDetail {
		if p, ok := m.bundle.ProjectAt(m.nav.ProjectIndex()); ok && p.GitHubURL != "" {
			return p.GitHubURL
		}
	}
	return m.repoURL
}

// CursorVisible reports whether the pointer indicator is showing
func (m TerminalModel) CursorVisible() bool { return m.cursorVisible }

func (m TerminalModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return RenderContextHelp(m.nav.View(), m.theme, m.width, m.height)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderNanoBar(),
	)
}

func (m TerminalModel) renderHeader() string {
	r := m.theme.Renderer
	var crumbs []string
	for _, v := range m.nav.History() {
		crumbs = append(crumbs, v.String())
	}
	path := r.NewStyle().Foreground(m.theme.Muted).Render(" ~/" + strings.Join(crumbs, "/"))
	title := m.theme.Header.Render("BlogLabs Terminal Interface")
	rule := r.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", max(m.width, 1)))
	return title + path + "\n" + rule
}

func (m TerminalModel) renderStatus() string {
	r := m.theme.Renderer
	left := r.NewStyle().Foreground(m.theme.Subtext).Render(m.status)
	if !m.cursorVisible {
		return left
	}
	ptr := r.NewStyle().Foreground(m.theme.Muted).Render("◉ " + strconv.Itoa(m.cursorX) + "," + strconv.Itoa(m.cursorY))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(ptr)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + ptr
}

// nanoItems returns the key hints for a view, in display order
func nanoItems(v View) [][2]string {
	var items [][2]string
	if v != ViewMain {
		items = append(items, [2]string{"⌫/C", "Back"}, [2]string{"Esc", "Main"})
	}
	switch v {
	case ViewMain:
		items = append(items,
			[2]string{"↑↓/jk", "Navigate"},
			[2]string{"Enter/l", "Select"},
			[2]string{"B/A/P/S", "Quick Access"},
			[2]string{"Q", "Quit"},
		)
	case ViewBlogList, ViewProjectList:
		items = append(items,
			[2]string{"↑↓/jk", "Navigate"},
			[2]string{"Enter/l", "Open"},
		)
	case ViewBlogDetail, ViewAbout, ViewProjectDetail:
		items = append(items,
			[2]string{"jk/↑↓", "Scroll"},
			[2]string{"hl/←→", "H-Scroll"},
		)
	case ViewSettings:
		items = append(items,
			[2]string{"↑↓/jk", "Navigate"},
			[2]string{"Enter/l", "Change"},
		)
	}
	return items
}

func (m TerminalModel) renderNanoBar() string {
	r := m.theme.Renderer
	keyStyle := r.NewStyle().Foreground(m.theme.Primary).Bold(true)
	descStyle := r.NewStyle().Foreground(m.theme.Subtext)

	var parts []string
	for _, it := range nanoItems(m.nav.View()) {
		parts = append(parts, keyStyle.Render(it[0])+descStyle.Render(": "+it[1]))
	}
	left := strings.Join(parts, "  ")
	right := keyStyle.Render("G") + descStyle.Render(": GitHub")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
