package types

import (
	"os"
	"path/filepath"
)

// SelectionType is the kind of the currently highlighted entry.
type SelectionType int

const (
	// Undefined means nothing is selected.
	Undefined SelectionType = iota
	File
	Directory
)

func (t SelectionType) String() string {
	switch t {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "undefined"
	}
}

// Selection is the context of one dispatch: the highlighted entry and,
// when two panels are open, the directory of the other panel.
type Selection struct {
	Path          string
	Type          SelectionType
	OtherPanelDir string
}

// NewSelection stats path to build a selection of the right type.
func NewSelection(path string) (Selection, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Selection{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Path: abs, Type: File}
	if info.IsDir() {
		sel.Type = Directory
	}
	return sel, nil
}

// Parent returns the directory containing the selection.
func (s Selection) Parent() string {
	if s.Path == "" {
		return ""
	}
	return filepath.Dir(s.Path)
}

// Directory returns the selection itself when it is a directory,
// otherwise its parent.
func (s Selection) Directory() string {
	if s.Type == Directory {
		return s.Path
	}
	return s.Parent()
}

// HasOtherPanel reports whether a second panel is open.
func (s Selection) HasOtherPanel() bool {
	return s.OtherPanelDir != ""
}

// WithOtherPanel returns a copy of the selection carrying the other panel directory.
func (s Selection) WithOtherPanel(dir string) Selection {
	s.OtherPanelDir = dir
	return s
}
