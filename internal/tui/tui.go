// Package tui is the interactive terminal console.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := deps.Session.Subscribe(func(authenticated bool) {
		go p.Send(sessionChangedMsg{authenticated: authenticated})
	})
	defer unsubscribe()
	_, err := p.Run()
	return err
}
