package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// cursorMode applies to every text input. Tests switch it to static so key
// handling returns no blink commands.
var cursorMode = cursor.CursorBlink

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Cursor.SetMode(cursorMode)
	return in
}
