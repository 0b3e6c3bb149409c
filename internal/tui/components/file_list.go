package components

import (
	"fmt"
	"strings"

	"verbtree/internal/tui/common"
	"verbtree/internal/tui/styles"

	"github.com/dustin/go-humanize"
)

// FileList renders one panel: a header with the directory and a window of
// entries around the cursor.
type FileList struct {
	styles styles.Styles
	height int
}

func NewFileList(st styles.Styles) *FileList {
	return &FileList{styles: st, height: 20}
}

// SetHeight sets how many entries are shown.
func (fl *FileList) SetHeight(h int) {
	if h > 0 {
		fl.height = h
	}
}

// window returns the range of entries to show so the cursor stays visible.
func (fl *FileList) window(n, cursor int) (int, int) {
	if n <= fl.height {
		return 0, n
	}
	start := cursor - fl.height/2
	if start < 0 {
		start = 0
	}
	end := start + fl.height
	if end > n {
		end = n
		start = end - fl.height
	}
	return start, end
}

// Render draws the panel. width is the outer width, 0 for unbounded.
func (fl *FileList) Render(p common.PanelReader, cols common.Columns, active bool, width int) string {
	var s strings.Builder

	s.WriteString(fl.styles.Title.Render(p.Dir()))
	s.WriteString("\n")

	entries := p.Entries()
	if len(entries) == 0 {
		s.WriteString(fl.styles.Details.Render("(empty)"))
	}

	start, end := fl.window(len(entries), p.Cursor())
	for i := start; i < end; i++ {
		e := entries[i]

		name := e.Name
		style := fl.styles.File
		if e.IsDir {
			name += "/"
			style = fl.styles.Directory
		}
		if i == p.Cursor() && active {
			style = fl.styles.Cursor
		}

		var details []string
		if cols.Perm {
			details = append(details, e.Perm.String())
		}
		if cols.Sizes && !e.IsDir {
			details = append(details, fmt.Sprintf("%8s", humanize.Bytes(uint64(e.Size))))
		}
		if cols.Dates {
			details = append(details, e.ModTime.Format("2006-01-02 15:04"))
		}

		s.WriteString(style.Render(name))
		if len(details) > 0 {
			s.WriteString("  " + fl.styles.Details.Render(strings.Join(details, "  ")))
		}
		if i < end-1 {
			s.WriteString("\n")
		}
	}

	frame := fl.styles.Panel
	if active {
		frame = fl.styles.ActivePanel
	}
	if width > 0 {
		frame = frame.Width(width - frame.GetHorizontalFrameSize())
	}
	return frame.Render(s.String())
}
