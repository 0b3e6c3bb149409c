package views

import (
	"strings"

	"verbtree/internal/tui/common"
	"verbtree/internal/tui/components"
	"verbtree/internal/tui/styles"
	"verbtree/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the panels side by side, then the preview, the
// input line, the status and the key help.
func RenderMainView(m common.ModelReader, st styles.Styles, listHeight int) string {
	var sb strings.Builder

	panels := m.Panels()
	width := 0
	if m.Width() > 0 && len(panels) > 0 {
		width = (m.Width() - st.App.GetHorizontalFrameSize()) / len(panels)
	}

	list := components.NewFileList(st)
	list.SetHeight(listHeight)
	rendered := make([]string, len(panels))
	for i, p := range panels {
		rendered[i] = list.Render(p, m.Columns(), i == m.ActivePanel(), width)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if preview := m.Preview(); preview != "" {
		sb.WriteString("\n" + st.Panel.Render(preview))
	}

	sb.WriteString("\n" + RenderInput(m, st))
	if status := components.NewStatusBar(st).View(m.Status(), m.StatusIsError()); status != "" {
		sb.WriteString("\n" + status)
	}
	if m.ShowHelp() {
		sb.WriteString("\n" + st.Help.Render(m.HelpView()))
	}

	return st.App.Render(sb.String())
}

// RenderInput draws the command line.
func RenderInput(m common.ModelReader, st styles.Styles) string {
	if m.Mode() != types.Command {
		return st.Details.Render("type a verb, : for command mode, ? for help")
	}
	return st.Input.Render(":" + m.Input() + "█")
}
