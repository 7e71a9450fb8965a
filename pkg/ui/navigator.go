package ui

// View is one screen of the terminal interface
type View int

const (
	ViewMain View = iota
	ViewBlogList
	ViewBlogDetail
	ViewAbout
	ViewProjectList
	ViewProjectDetail
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewMain:
		return "main"
	case ViewBlogList:
		return "blogList"
	case ViewBlogDetail:
		return "blogDetail"
	case ViewAbout:
		return "about"
	case ViewProjectList:
		return "projectList"
	case ViewProjectDetail:
		return "projectDetail"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ParseView maps a view name back to its View
func ParseView(name string) (View, bool) {
	for v := ViewMain; v <= ViewSettings; v++ {
		if v.String() == name {
			return v, true
		}
	}
	return ViewMain, false
}

// IsScrollable reports whether directional keys scroll the view instead of
// moving the selection.
func (v View) IsScrollable() bool {
	return v == ViewBlogDetail || v == ViewAbout || v == ViewProjectDetail
}

// Source reports what the navigator can select in each view
type Source interface {
	// Count returns the number of selectable entries in v
	Count(v View) int
	// SlugAt returns the slug of the i-th blog post
	SlugAt(i int) string
}

// ActionKind says what the caller must do after an activation
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionReboot restarts the boot sequence
	ActionReboot
	// ActionSetting activates the setting at Action.Index
	ActionSetting
)

// Action is the side effect requested by Activate
type Action struct {
	Kind  ActionKind
	Index int
}

// Navigator is the view state machine: the current view, a history stack
// whose root is always main, and the selection index.
type Navigator struct {
	src      Source
	history  []View
	selected int

	blogSlug     string
	projectIndex int
}

// NewNavigator starts on the main menu
func NewNavigator(src Source) *Navigator {
	return &Navigator{src: src, history: []View{ViewMain}}
}

// SetSource swaps the content source, e.g. after a rebuild, and re-clamps
// the selection.
func (n *Navigator) SetSource(src Source) {
	n.src = src
	n.normalize()
}

func (n *Navigator) View() View        { return n.history[len(n.history)-1] }
func (n *Navigator) Selected() int     { return n.selected }
func (n *Navigator) BlogSlug() string  { return n.blogSlug }
func (n *Navigator) ProjectIndex() int { return n.projectIndex }

// History returns a copy of the history stack, root first
func (n *Navigator) History() []View {
	out := make([]View, len(n.history))
	copy(out, n.history)
	return out
}

// Count is the number of selectable entries in the current view
func (n *Navigator) Count() int {
	if n.src == nil {
		return 0
	}
	return n.src.Count(n.View())
}

// Up moves the selection up, wrapping to the last entry
func (n *Navigator) Up() {
	c := n.Count()
	if c == 0 {
		n.selected = 0
		return
	}
	n.selected = (n.selected - 1 + c) % c
}

// Down moves the selection down, wrapping to the first entry
func (n *Navigator) Down() {
	c := n.Count()
	if c == 0 {
		n.selected = 0
		return
	}
	n.selected = (n.selected + 1) % c
}

// Select moves the selection to i when it is in range
func (n *Navigator) Select(i int) bool {
	if i < 0 || i >= n.Count() {
		return false
	}
	n.selected = i
	return true
}

// Activate selects entry i and performs its transition. Settings and
// reboot are reported back as actions since they live outside the
// navigator.
func (n *Navigator) Activate(i int) Action {
	if !n.Select(i) {
		return Action{}
	}
	switch n.View() {
	case ViewMain:
		switch i {
		case MenuBlogs:
			n.push(ViewBlogList)
		case MenuAbout:
			n.push(ViewAbout)
		case MenuProjects:
			n.push(ViewProjectList)
		case MenuSettings:
			n.push(ViewSettings)
		case MenuReboot:
			return Action{Kind: ActionReboot}
		}
	case ViewBlogList:
		n.blogSlug = n.src.SlugAt(i)
		n.push(ViewBlogDetail)
	case ViewProjectList:
		n.projectIndex = i
		n.push(ViewProjectDetail)
	case ViewSettings:
		return Action{Kind: ActionSetting, Index: i}
	}
	return Action{}
}

// Enter activates the current selection
func (n *Navigator) Enter() Action {
	return n.Activate(n.selected)
}

// Back pops one level of history. With nothing left to pop it resets to
// the main menu.
func (n *Navigator) Back() {
	if len(n.history) > 1 {
		n.history = n.history[:len(n.history)-1]
		n.selected = 0
		n.normalize()
		return
	}
	n.Home()
}

// Home resets the history to the main menu
func (n *Navigator) Home() {
	n.history = []View{ViewMain}
	n.selected = 0
}

// Jump is the quick-access shortcut from the main menu. It is ignored
// anywhere else.
func (n *Navigator) Jump(v View) bool {
	if n.View() != ViewMain {
		return false
	}
	switch v {
	case ViewBlogList, ViewAbout, ViewProjectList, ViewSettings:
		n.push(v)
		return true
	}
	return false
}

// Open navigates straight to v from main, as if the menu had been used.
// Detail views are not reachable this way.
func (n *Navigator) Open(v View) bool {
	n.Home()
	return n.Jump(v)
}

func (n *Navigator) push(v View) {
	n.history = append(n.history, v)
	n.selected = 0
}

func (n *Navigator) normalize() {
	c := n.Count()
	if c == 0 || n.selected < 0 || n.selected >= c {
		n.selected = 0
	}
}
