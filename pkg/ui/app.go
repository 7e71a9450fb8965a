package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// AppConfig configures the root program model
type AppConfig struct {
	Terminal     TerminalConfig
	SkipBoot     bool
	BootInterval time.Duration
	BootPause    time.Duration
	StartView    View
	Worker       *ContentWorker
}

// AppModel plays the boot sequence and then hands over to the terminal
type AppModel struct {
	boot    BootModel
	term    TerminalModel
	booting bool
	worker  *ContentWorker
}

// NewAppModel creates the root model
func NewAppModel(cfg AppConfig) AppModel {
	if cfg.Terminal.Worker == nil {
		cfg.Terminal.Worker = cfg.Worker
	}
	term := NewTerminalModel(cfg.Terminal)
	return AppModel{
		boot:    NewBootModel(term.theme, cfg.BootInterval, cfg.BootPause),
		term:    term.OpenView(cfg.StartView),
		booting: !cfg.SkipBoot,
		worker:  cfg.Worker,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.worker != nil {
		if err := m.worker.Start(); err != nil {
			log.Printf("app: content worker: %v", err)
		}
	}
	if m.booting {
		return m.boot.Init()
	}
	return m.term.Init()
}

// Booting reports whether the boot sequence is still showing
func (m AppModel) Booting() bool { return m.booting }

// Terminal returns the shell model
func (m AppModel) Terminal() TerminalModel { return m.term }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopWorker()
			return m, tea.Quit
		}
		if m.booting {
			return m, nil
		}
		m.term, cmd = m.term.Update(msg)
		return m, m.watchQuit(cmd)

	case tea.WindowSizeMsg:
		m.boot, _ = m.boot.Update(msg)
		m.term, cmd = m.term.Update(msg)
		return m, cmd

	case BootDoneMsg:
		m.booting = false
		return m, nil

	case bootTickMsg, bootFinishMsg:
		m.boot, cmd = m.boot.Update(msg)
		return m, cmd

	case RebootMsg:
		m.booting = true
		m.term = m.term.Reset()
		m.boot, cmd = m.boot.Restart()
		return m, cmd

	case BundleReadyMsg:
		m.term = m.term.SetBundle(msg.Bundle)
		return m, nil

	case BundleErrorMsg:
		log.Printf("app: content rebuild failed: %v", msg.Err)
		m.term.status = "Content rebuild failed; keeping previous content"
		return m, nil

	case tea.MouseMsg:
		if m.booting {
			return m, nil
		}
	}

	m.term, cmd = m.term.Update(msg)
	return m, m.watchQuit(cmd)
}

// watchQuit stops the worker when the terminal asks to quit
func (m AppModel) watchQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil || m.worker == nil {
		return cmd
	}
	w := m.worker
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			w.Stop()
		}
		return msg
	}
}

func (m AppModel) stopWorker() {
	if m.worker != nil {
		m.worker.Stop()
	}
}

func (m AppModel) View() string {
	if m.booting {
		return m.boot.View()
	}
	return m.term.View()
}
