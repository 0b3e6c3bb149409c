package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"verbtree/internal/errors"
	"verbtree/internal/tui/common"
	"verbtree/pkg/types"
)

type sortMode int

const (
	sortByName sortMode = iota
	sortBySize
	sortByDate
	sortByCount
)

type scanOptions struct {
	showHidden bool
	dirsOnly   bool
	sort       sortMode
}

// panel is one directory listing. The browser shows one or two.
type panel struct {
	dir     string
	entries []common.FileEntry
	counts  map[string]int
	cursor  int
	history []string
}

func newPanel(dir string) *panel {
	return &panel{dir: dir}
}

func (p *panel) Dir() string {
	return p.dir
}

func (p *panel) Entries() []common.FileEntry {
	return p.entries
}

func (p *panel) Cursor() int {
	return p.cursor
}

func (p *panel) scan(opts scanOptions) error {
	dirEntries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("directory not found", p.dir, errors.FileNotFound, err)
		}
		return errors.NewFileError("cannot read directory", p.dir, errors.FileAccessDenied, err)
	}

	entries := make([]common.FileEntry, 0, len(dirEntries))
	p.counts = make(map[string]int)
	for _, de := range dirEntries {
		if !opts.showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		path := filepath.Join(p.dir, de.Name())
		info, err := os.Stat(path)
		if err != nil {
			// dangling symlink
			info, err = de.Info()
			if err != nil {
				continue
			}
		}
		if opts.dirsOnly && !info.IsDir() {
			continue
		}
		entries = append(entries, common.FileEntry{
			Name:    de.Name(),
			Path:    path,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Perm:    info.Mode(),
		})
		if opts.sort == sortByCount && info.IsDir() {
			if children, err := os.ReadDir(path); err == nil {
				p.counts[path] = len(children)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch opts.sort {
		case sortBySize:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		case sortByDate:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
		case sortByCount:
			if p.counts[a.Path] != p.counts[b.Path] {
				return p.counts[a.Path] > p.counts[b.Path]
			}
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})

	p.entries = entries
	p.clampCursor()
	return nil
}

func (p *panel) clampCursor() {
	if p.cursor >= len(p.entries) {
		p.cursor = len(p.entries) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *panel) move(delta int) {
	p.cursor += delta
	p.clampCursor()
}

// selected returns the entry under the cursor.
func (p *panel) selected() (common.FileEntry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return common.FileEntry{}, false
	}
	return p.entries[p.cursor], true
}

// selection is what verbs act on: the entry under the cursor, or the
// panel directory itself when it is empty.
func (p *panel) selection() types.Selection {
	if e, ok := p.selected(); ok {
		return types.Selection{Path: e.Path, Type: e.SelectionType()}
	}
	return types.Selection{Path: p.dir, Type: types.Directory}
}

// focus shows dir, remembering the current directory for back.
func (p *panel) focus(dir string, opts scanOptions) error {
	prev, prevCursor := p.dir, p.cursor
	p.dir = filepath.Clean(dir)
	p.cursor = 0
	if err := p.scan(opts); err != nil {
		p.dir, p.cursor = prev, prevCursor
		return err
	}
	p.history = append(p.history, prev)
	return nil
}

// back returns to the previous directory. It reports false when there is
// no history.
func (p *panel) back(opts scanOptions) bool {
	if len(p.history) == 0 {
		return false
	}
	prev := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	from := p.dir
	p.dir = prev
	p.cursor = 0
	if err := p.scan(opts); err != nil {
		return false
	}
	p.selectPath(from)
	return true
}

// selectPath moves the cursor onto path if it is listed.
func (p *panel) selectPath(path string) {
	for i, e := range p.entries {
		if e.Path == path {
			p.cursor = i
			return
		}
	}
}

// nextMatch moves the cursor to the next entry whose name contains text.
func (p *panel) nextMatch(text string) bool {
	text = strings.ToLower(text)
	n := len(p.entries)
	for i := 1; i <= n; i++ {
		j := (p.cursor + i) % n
		if strings.Contains(strings.ToLower(p.entries[j].Name), text) {
			p.cursor = j
			return true
		}
	}
	return false
}
