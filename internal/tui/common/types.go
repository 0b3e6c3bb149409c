package common

import (
	"os"
	"time"

	"verbtree/pkg/types"
)

// FileEntry is one line of a panel.
type FileEntry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Perm    os.FileMode
}

// SelectionType returns the type a verb sees for this entry.
func (e FileEntry) SelectionType() types.SelectionType {
	if e.IsDir {
		return types.Directory
	}
	return types.File
}

// Columns tells which optional columns the panels show.
type Columns struct {
	Sizes bool
	Dates bool
	Perm  bool
}

// PanelReader defines what views read from a panel
type PanelReader interface {
	Dir() string
	Entries() []FileEntry
	Cursor() int
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Panels() []PanelReader
	ActivePanel() int
	Mode() types.Mode
	Input() string
	Status() string
	StatusIsError() bool
	ShowHelp() bool
	HelpView() string
	Preview() string
	Columns() Columns
	Width() int
}
