package components

import (
	"verbtree/internal/tui/styles"
)

// StatusBar shows the outcome of the last verb.
type StatusBar struct {
	styles styles.Styles
}

func NewStatusBar(st styles.Styles) *StatusBar {
	return &StatusBar{styles: st}
}

// View renders text, as an error when isErr is set.
func (s *StatusBar) View(text string, isErr bool) string {
	if text == "" {
		return ""
	}
	if isErr {
		return s.styles.Error.Render(text)
	}
	return s.styles.Status.Render(text)
}
