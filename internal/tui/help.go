package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// helpStyle is the glamour standard style used for the help screen.
var helpStyle = "dark"

type helpModel struct {
	viewport viewport.Model
	err      error
}

func newHelpModel(width, height int) helpModel {
	width, height = max(width-4, 28), max(height-6, 8)
	h := helpModel{viewport: viewport.New(width, height)}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(helpStyle),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err == nil {
		var content string
		content, err = renderer.Render(strings.TrimSpace(helpMarkdown))
		h.viewport.SetContent(content)
	}
	if err != nil {
		h.err = err
		h.viewport.SetContent("help unavailable: " + err.Error())
	}
	return h
}

func (h helpModel) update(msg tea.KeyMsg) (helpModel, tea.Cmd) {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h helpModel) view() string {
	return boxStyle.Render(h.viewport.View())
}
