package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorAccent lipgloss.TerminalColor = ac("25", "75")
	colorError  lipgloss.TerminalColor = ac("160", "203")
	colorOK     lipgloss.TerminalColor = ac("28", "78")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	menuStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	menuActive   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Width(18)
	focusedLabel = labelStyle.Bold(true).Foreground(colorAccent)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

// feedback renders inline feedback, red when failed.
func feedback(text string, failed bool) string {
	if text == "" {
		return ""
	}
	if failed {
		return errorStyle.Render(text)
	}
	return okStyle.Render(text)
}
