package styles

import "github.com/charmbracelet/lipgloss"

// Colors are the configurable theme colors, as ANSI numbers or hex codes.
type Colors struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// Styles defines the core UI styles
type Styles struct {
	App         lipgloss.Style
	Title       lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	Cursor      lipgloss.Style
	File        lipgloss.Style
	Directory   lipgloss.Style
	Details     lipgloss.Style
	Input       lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

// DefaultColors match the "default" config theme.
var DefaultColors = Colors{
	Primary:  "213",
	Success:  "114",
	Warning:  "220",
	Error:    "196",
	Info:     "39",
	Emphasis: "212",
	Border:   "213",
}

// Theme is the style set used when no config theme was applied.
var Theme = New(DefaultColors)

// New builds the styles for a color set.
func New(c Colors) Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Primary)),
		Panel:       panel,
		ActivePanel: panel.BorderForeground(lipgloss.Color(c.Border)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(c.Primary)),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)).
			Bold(true),
		Details: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Emphasis)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Success)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
	}
}
