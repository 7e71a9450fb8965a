package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Coder-Harshit/bloglabs/pkg/settings"
)

var errTest = errors.New("boom")

func newTestApp(skipBoot bool) AppModel {
	m := NewAppModel(AppConfig{
		Terminal: TerminalConfig{
			Bundle:   testBundle(),
			Settings: settings.Load(settings.NewMemoryStore(nil)),
			Renderer: testRenderer(),
			Opener:   &LinkOpener{},
		},
		SkipBoot:     skipBoot,
		BootInterval: time.Millisecond,
		BootPause:    time.Millisecond,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return app, cmd
}

func TestApp_BootGatesInput(t *testing.T) {
	m := newTestApp(false)
	if !m.Booting() {
		t.Fatal("not booting")
	}
	m, _ = update(t, m, runeKey("b"))
	if m.Terminal().Navigator().View() != ViewMain {
		t.Error("key handled during boot")
	}

	m, _ = update(t, m, bootTickMsg{gen: 0})
	if !strings.Contains(m.View(), BootLines[0]) {
		t.Error("first boot line not shown")
	}
	for range BootLines[1:] {
		m, _ = update(t, m, bootTickMsg{gen: 0})
	}
	m, cmd := update(t, m, bootFinishMsg{gen: 0})
	if cmd == nil {
		t.Fatal("finish produced no command")
	}
	m, _ = update(t, m, cmd())
	if m.Booting() {
		t.Fatal("still booting after BootDoneMsg")
	}
	m, _ = update(t, m, runeKey("b"))
	if m.Terminal().Navigator().View() != ViewBlogList {
		t.Errorf("b after boot: %v", m.Terminal().Navigator().View())
	}
}

func TestApp_SkipBootAndStartView(t *testing.T) {
	m := NewAppModel(AppConfig{
		Terminal:  TerminalConfig{Bundle: testBundle(), Renderer: testRenderer(), Opener: &LinkOpener{}},
		SkipBoot:  true,
		StartView: ViewProjectList,
	})
	if m.Booting() {
		t.Error("booting with SkipBoot")
	}
	if m.Terminal().Navigator().View() != ViewProjectList {
		t.Errorf("start view = %v", m.Terminal().Navigator().View())
	}
}

func TestApp_Reboot(t *testing.T) {
	m := newTestApp(true)
	m, _ = update(t, m, runeKey("a"))
	m, cmd := update(t, m, RebootMsg{})
	if !m.Booting() || cmd == nil {
		t.Fatal("RebootMsg did not restart the boot")
	}
	if m.Terminal().Navigator().View() != ViewMain {
		t.Errorf("reboot left view %v", m.Terminal().Navigator().View())
	}
}

func TestApp_CtrlCQuitsDuringBoot(t *testing.T) {
	m := newTestApp(false)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c produced %T", cmd())
	}
}

func TestApp_BundleMessages(t *testing.T) {
	m := newTestApp(true)
	b := testBundle()
	b.Posts = b.Posts[:1]
	m, _ = update(t, m, BundleReadyMsg{Bundle: b})
	m, _ = update(t, m, runeKey("b"))
	count := 0
	for _, l := range m.Terminal().Lines() {
		if l.Interactive {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d posts after reload, want 1", count)
	}

	m, _ = update(t, m, BundleErrorMsg{Err: errTest})
	if !strings.Contains(m.Terminal().Status(), "failed") {
		t.Errorf("status = %q", m.Terminal().Status())
	}
}
