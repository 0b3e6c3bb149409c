package tui

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"verbtree/internal/dispatch"
	"verbtree/internal/errors"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/mitchellh/go-homedir"
)

const previewBytes = 4096

// ApplyInternal runs an internal action against the browser state. Bang
// variants are decided here, from the current panels.
func (m *Model) ApplyInternal(req dispatch.InternalRequest) (dispatch.Outcome, error) {
	p := m.activePanel()
	sel := m.Selection()

	switch req.Action {
	case verb.Back:
		switch {
		case m.preview != "":
			m.preview = ""
		case m.showHelp:
			m.showHelp = false
		case len(m.panels) > 1:
			m.closePanel(m.active)
		case !p.back(m.scan):
			m.setStatus("")
		}

	case verb.Quit:
		return dispatch.Quit, nil

	case verb.Refresh:
		m.setStatus("refreshed")
		return dispatch.Refresh, nil

	case verb.Help:
		m.showHelp = !m.showHelp

	case verb.LineDown:
		p.move(1)
	case verb.LineUp:
		p.move(-1)
	case verb.PageDown:
		p.move(m.listHeight())
	case verb.PageUp:
		p.move(-m.listHeight())

	case verb.NextMatch:
		if m.input == "" || !p.nextMatch(m.input) {
			p.move(1)
		}

	case verb.Focus:
		return dispatch.Handled, m.focus(req.Argument, sel)

	case verb.OpenStay, verb.OpenStayFilter:
		if sel.Type == types.Directory {
			return dispatch.Handled, p.focus(sel.Path, m.scan)
		}
		m.pending = externalRequest(openCommand(sel.Path), verb.StayInApp)

	case verb.OpenLeave:
		if sel.Type == types.Directory {
			m.leaveCmd = cdCommand(sel.Path)
		} else {
			m.leaveCmd = openCommand(sel.Path)
		}
		return dispatch.Quit, nil

	case verb.Parent, verb.UpTree:
		from := p.Dir()
		parent := filepath.Dir(from)
		if parent == from {
			return dispatch.Handled, nil
		}
		if err := p.focus(parent, m.scan); err != nil {
			return dispatch.Handled, err
		}
		p.selectPath(from)

	case verb.StartEndPanel:
		m.togglePanel(req.Bang, sel)
	case verb.ClosePanelOK:
		if len(m.panels) > 1 {
			target := sel.Directory()
			m.closePanel(m.active)
			return dispatch.Handled, m.activePanel().focus(target, m.scan)
		}
	case verb.ClosePanelCancel:
		if len(m.panels) > 1 {
			m.closePanel(m.active)
		}
	case verb.PanelLeft:
		if m.active > 0 {
			m.active--
		}
	case verb.PanelRight:
		if m.active < len(m.panels)-1 {
			m.active++
		}

	case verb.CopyPath:
		if err := m.clip.WriteAll(sel.Path); err != nil {
			return dispatch.Handled, errors.Wrap(err, "cannot copy to clipboard")
		}
		m.setStatus("copied " + sel.Path)
	case verb.InputPaste:
		text, err := m.clip.ReadAll()
		if err != nil {
			return dispatch.Handled, errors.Wrap(err, "cannot read clipboard")
		}
		if line, _, _ := strings.Cut(text, "\n"); line != "" {
			m.mode = types.Command
			m.input += line
		}

	case verb.PrintPath:
		m.output = sel.Path
		return dispatch.Quit, nil
	case verb.PrintRelativePath:
		rel, err := filepath.Rel(m.root, sel.Path)
		if err != nil {
			rel = sel.Path
		}
		m.output = rel
		return dispatch.Quit, nil
	case verb.PrintTree:
		var sb strings.Builder
		sb.WriteString(p.Dir())
		for _, e := range p.Entries() {
			sb.WriteString("\n  " + e.Name)
			if e.IsDir {
				sb.WriteString("/")
			}
		}
		m.output = sb.String()
		return dispatch.Quit, nil

	case verb.ToggleHidden:
		m.scan.showHidden = !m.scan.showHidden
		return dispatch.Refresh, nil
	case verb.ToggleFiles:
		m.scan.dirsOnly = !m.scan.dirsOnly
		return dispatch.Refresh, nil
	case verb.ToggleSizes:
		m.cols.Sizes = !m.cols.Sizes
	case verb.ToggleDates:
		m.cols.Dates = !m.cols.Dates
	case verb.TogglePerm:
		m.cols.Perm = !m.cols.Perm

	case verb.SortBySize:
		m.toggleSort(sortBySize)
		return dispatch.Refresh, nil
	case verb.SortByDate:
		m.toggleSort(sortByDate)
		return dispatch.Refresh, nil
	case verb.SortByCount:
		m.toggleSort(sortByCount)
		return dispatch.Refresh, nil
	case verb.NoSort:
		m.scan.sort = sortByName
		return dispatch.Refresh, nil

	case verb.OpenPreview, verb.PreviewText:
		return dispatch.Handled, m.showPreview(sel, false)
	case verb.PreviewBinary:
		return dispatch.Handled, m.showPreview(sel, true)
	case verb.TogglePreview:
		if m.preview != "" {
			m.preview = ""
			return dispatch.Handled, nil
		}
		return dispatch.Handled, m.showPreview(sel, false)
	case verb.ClosePreview:
		m.preview = ""

	case verb.Filesystems:
		var out bytes.Buffer
		cmd := m.runner.Command(m.ctx, "df -h")
		cmd.Stdin = nil
		cmd.Stdout = &out
		cmd.Stderr = &out
		if err := cmd.Run(); err != nil {
			return dispatch.Handled, errors.Wrap(err, "cannot list filesystems")
		}
		m.preview = strings.TrimRight(out.String(), "\n")

	default:
		m.setStatus(req.Action.Name() + " is not available in this browser")
	}
	return dispatch.Handled, nil
}

// focus shows the argument directory, or the selection: a directory is
// entered, a file is selected in its parent.
func (m *Model) focus(arg string, sel types.Selection) error {
	p := m.activePanel()
	if arg != "" {
		path, err := homedir.Expand(arg)
		if err != nil {
			return err
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Dir(), path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return errors.NewFileError("cannot focus", path, errors.FileNotFound, err)
		}
		if !info.IsDir() {
			sel = types.Selection{Path: path, Type: types.File}
		} else {
			sel = types.Selection{Path: path, Type: types.Directory}
		}
	}
	if sel.Type == types.Directory {
		return p.focus(sel.Path, m.scan)
	}
	if err := p.focus(sel.Parent(), m.scan); err != nil {
		return err
	}
	p.selectPath(sel.Path)
	return nil
}

// togglePanel opens a second panel, or closes one. Without bang the new
// panel shows the same directory and closing drops the inactive panel;
// with bang the new panel starts on the selected directory and closing
// drops the active one.
func (m *Model) togglePanel(bang bool, sel types.Selection) {
	if len(m.panels) == 1 {
		dir := m.activePanel().Dir()
		if bang {
			dir = sel.Directory()
		}
		p := newPanel(dir)
		if err := p.scan(m.scan); err != nil {
			m.setError(err)
			return
		}
		m.panels = append(m.panels, p)
		m.active = 1
		return
	}
	if bang {
		m.closePanel(m.active)
	} else {
		m.closePanel(1 - m.active)
	}
}

func (m *Model) closePanel(i int) {
	m.panels = append(m.panels[:i], m.panels[i+1:]...)
	if m.active >= len(m.panels) {
		m.active = len(m.panels) - 1
	}
	if m.active < 0 {
		m.active = 0
	}
}

func (m *Model) toggleSort(s sortMode) {
	if m.scan.sort == s {
		m.scan.sort = sortByName
		return
	}
	m.scan.sort = s
}

func (m *Model) showPreview(sel types.Selection, binary bool) error {
	if sel.Type != types.File {
		m.preview = fmt.Sprintf("%s is a directory", sel.Path)
		return nil
	}
	f, err := os.Open(sel.Path)
	if err != nil {
		return errors.NewFileError("cannot preview", sel.Path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	buf := make([]byte, previewBytes)
	n, _ := f.Read(buf)
	buf = buf[:n]
	if binary || bytes.IndexByte(buf, 0) >= 0 {
		m.preview = strings.TrimRight(hex.Dump(buf[:min(n, 256)]), "\n")
		return nil
	}
	lines := strings.Split(string(buf), "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	m.preview = strings.Join(lines, "\n")
	return nil
}
