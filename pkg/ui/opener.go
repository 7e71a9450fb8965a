package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenResultMsg is returned after trying to open a URL in the browser
type OpenResultMsg struct {
	URL     string
	Success bool
	Error   error
	Output  string
}

// CopyResultMsg is returned after copying a link to the clipboard
type CopyResultMsg struct {
	Text  string
	Error error
}

// LinkOpener hands URLs to the platform's opener command
type LinkOpener struct {
	path      string
	args      []string
	available bool
}

// NewLinkOpener detects the opener for the current platform
func NewLinkOpener() *LinkOpener {
	name, args := openerCommand(runtime.GOOS)
	path, err := exec.LookPath(name)
	if err != nil {
		return &LinkOpener{available: false}
	}
	return &LinkOpener{path: path, args: args, available: true}
}

func openerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// IsAvailable returns whether an opener command was found
func (o *LinkOpener) IsAvailable() bool {
	return o != nil && o.available
}

// Open launches url asynchronously and reports the outcome
func (o *LinkOpener) Open(url string) tea.Cmd {
	if !o.IsAvailable() {
		return func() tea.Msg {
			return OpenResultMsg{
				URL:   url,
				Error: fmt.Errorf("no browser opener found; visit %s", url),
			}
		}
	}
	path := o.path
	args := append(append([]string{}, o.args...), url)
	return func() tea.Msg {
		cmd := exec.Command(path, args...)
		output, err := cmd.CombinedOutput()
		outStr := strings.TrimSpace(string(output))
		if err != nil {
			return OpenResultMsg{
				URL:    url,
				Error:  fmt.Errorf("%s: %w", outStr, err),
				Output: outStr,
			}
		}
		return OpenResultMsg{URL: url, Success: true, Output: outStr}
	}
}

// copyLink writes text to the system clipboard
func copyLink(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Text: text, Error: clipboard.WriteAll(text)}
	}
}
