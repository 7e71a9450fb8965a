package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	back      key.Binding
	home      key.Binding
	quit      key.Binding
	forceQuit key.Binding
	blogs     key.Binding
	about     key.Binding
	projects  key.Binding
	settings  key.Binding
	github    key.Binding
	copyLink  key.Binding
	reboot    key.Binding
	reload    key.Binding
	help      key.Binding
	pageUp    key.Binding
	pageDown  key.Binding
	top       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter/l", "select"),
		),
		back: key.NewBinding(
			key.WithKeys("backspace", "c"),
			key.WithHelp("backspace/c", "back"),
		),
		home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "main menu"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		blogs: key.NewBinding(
			key.WithKeys("b", "B"),
			key.WithHelp("b", "blogs"),
		),
		about: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "about"),
		),
		projects: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "projects"),
		),
		settings: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "settings"),
		),
		github: key.NewBinding(
			key.WithKeys("g", "G"),
			key.WithHelp("g", "open GitHub"),
		),
		copyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		reboot: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reboot"),
		),
		reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload content"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("pgdn", "page down"),
		),
		top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
	}
}
