package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func colorizeDetailLine(line string, theme UITheme) string {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Render(line)
	}
	label := line[:idx+1]
	value := strings.TrimSpace(line[idx+1:])
	labelStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TableHeader)).Render(label)
	valueStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Render(value)
	if value == "" {
		return labelStyled
	}
	return labelStyled + " " + valueStyled
}

// messageStyle colors transient results by outcome.
func messageStyle(ok bool, theme UITheme) lipgloss.Style {
	if ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Danger)).Bold(true)
}
