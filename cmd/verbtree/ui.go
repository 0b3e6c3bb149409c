package main

import (
	"verbtree/internal/config"
	"verbtree/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle()
	warningStyle = lipgloss.NewStyle()
	infoStyle    = lipgloss.NewStyle()
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// applyTheme colors the CLI output with the config theme.
func applyTheme(c *config.Config) {
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Theme.Success))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Theme.Error))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Theme.Warning))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Theme.Info))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Theme.Primary))
}

func themeColors(c *config.Config) styles.Colors {
	return styles.Colors{
		Primary:  c.Theme.Primary,
		Success:  c.Theme.Success,
		Warning:  c.Theme.Warning,
		Error:    c.Theme.Error,
		Info:     c.Theme.Info,
		Emphasis: c.Theme.Emphasis,
		Border:   c.Theme.Border,
	}
}

func successText(s string) string { return successStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func warningText(s string) string { return warningStyle.Render(s) }
func infoText(s string) string    { return infoStyle.Render(s) }
func headerText(s string) string  { return headerStyle.Render(s) }
