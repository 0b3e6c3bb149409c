// Package tui is a small two-panel file browser. It feeds key presses and
// typed text to the verb engine and applies the internal requests it gets
// back.
package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"verbtree/internal/dispatch"
	"verbtree/internal/log"
	"verbtree/internal/registry"
	"verbtree/internal/shell"
	"verbtree/internal/tui/common"
	"verbtree/internal/tui/messages"
	"verbtree/internal/tui/styles"
	"verbtree/internal/tui/views"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a browser.
type Options struct {
	Dir        string
	Registry   *registry.Holder
	Runner     *shell.Runner
	Clipboard  Clipboard
	Colors     styles.Colors
	ShowHidden bool
}

type Model struct {
	ctx    context.Context
	engine *dispatch.Engine
	runner *shell.Runner
	clip   Clipboard
	styles styles.Styles
	help   help.Model
	root   string

	// Panels
	panels []*panel
	active int
	scan   scanOptions
	cols   common.Columns

	// Command mode state
	mode      types.Mode
	input     string
	status    string
	statusErr bool
	showHelp  bool
	preview   string

	width  int
	height int

	// Set while a verb is being dispatched
	pending  *dispatch.ExternalRequest
	leaveCmd string
	output   string
}

// New builds a browser showing opts.Dir.
func New(opts Options) (*Model, error) {
	if opts.Runner == nil {
		opts.Runner = shell.NewRunner("")
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Colors == (styles.Colors{}) {
		opts.Colors = styles.DefaultColors
	}

	m := &Model{
		ctx:    context.Background(),
		runner: opts.Runner,
		clip:   opts.Clipboard,
		styles: styles.New(opts.Colors),
		help:   help.New(),
		root:   opts.Dir,
		mode:   types.Normal,
		scan:   scanOptions{showHidden: opts.ShowHidden},
		cols:   common.Columns{Sizes: true},
	}
	m.engine = dispatch.NewEngine(opts.Registry, dispatch.NewDispatcher(m, execBridge{m}))

	p := newPanel(opts.Dir)
	if err := p.scan(m.scan); err != nil {
		return nil, err
	}
	m.panels = []*panel{p}
	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m, m.styles, m.listHeight())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	case messages.ExecDoneMsg:
		if msg.Err != nil {
			m.setError(msg.Err)
		} else {
			m.setStatus("done")
		}
		m.rescan()
	case messages.RegistryReloadedMsg:
		if len(msg.Errors) > 0 {
			m.setError(fmt.Errorf("verbs reloaded, %d invalid verbs skipped: %v", len(msg.Errors), msg.Errors[0]))
		} else {
			m.setStatus(fmt.Sprintf("verbs reloaded (%d)", msg.Registry.Len()))
		}
	case messages.DirectoryChangeMsg:
		if err := m.activePanel().focus(msg.Path, m.scan); err != nil {
			m.setError(err)
		}
	case messages.ErrorMsg:
		m.setError(msg.Err)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.mode == types.Command {
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = types.Normal
			m.input = ""
			return nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input)
			m.mode = types.Normal
			m.input = ""
			if text == "" {
				return nil
			}
			return m.runInput(text)
		case tea.KeyBackspace:
			if m.input == "" {
				m.mode = types.Normal
				return nil
			}
			_, size := utf8.DecodeLastRuneInString(m.input)
			m.input = m.input[:len(m.input)-size]
			return nil
		case tea.KeySpace:
			m.input += " "
			return nil
		case tea.KeyRunes:
			if !msg.Alt {
				m.input += string(msg.Runes)
				return nil
			}
		}
		// everything else still goes to the key map (tab, ctrl-v...)
		return m.runKey(types.ChordFromKeyMsg(msg))
	}

	switch {
	case msg.Type == tea.KeyRunes && !msg.Alt:
		// typing starts an invocation
		m.mode = types.Command
		m.input = strings.TrimPrefix(string(msg.Runes), ":")
		return nil
	case msg.Type == tea.KeyEsc:
		return m.after(m.ApplyInternal(dispatch.InternalRequest{Action: verb.Back}))
	}
	return m.runKey(types.ChordFromKeyMsg(msg))
}

func (m *Model) runKey(chord types.KeyChord) tea.Cmd {
	out, ok, err := m.engine.HandleKey(m.ctx, chord, m.Selection())
	if !ok {
		log.LogWithFields(log.F("key", chord.String())).Debug("no verb bound")
		return nil
	}
	return m.after(out, err)
}

func (m *Model) runInput(text string) tea.Cmd {
	out, ok, err := m.engine.HandleInput(m.ctx, text, m.Selection())
	if !ok {
		// not a verb: search the panel instead
		if !m.activePanel().nextMatch(text) {
			m.setError(fmt.Errorf("no verb or entry matches %q", text))
		}
		return nil
	}
	return m.after(out, err)
}

// after turns a dispatch outcome into the next bubbletea command.
func (m *Model) after(out dispatch.Outcome, err error) tea.Cmd {
	if err != nil {
		m.setError(err)
		return nil
	}
	if m.pending != nil {
		req := *m.pending
		m.pending = nil
		m.setStatus(req.Command)
		return tea.ExecProcess(m.runner.Command(m.ctx, req.Command), func(err error) tea.Msg {
			return messages.ExecDoneMsg{ID: req.ID, Err: err}
		})
	}
	switch out {
	case dispatch.Quit:
		return tea.Quit
	case dispatch.Refresh:
		m.rescan()
	}
	return nil
}

func (m *Model) rescan() {
	for _, p := range m.panels {
		if err := p.scan(m.scan); err != nil {
			m.setError(err)
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	log.LogWithError(err).Debug("browser error")
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) activePanel() *panel {
	return m.panels[m.active]
}

func (m *Model) otherPanel() (*panel, bool) {
	if len(m.panels) < 2 {
		return nil, false
	}
	return m.panels[1-m.active], true
}

func (m *Model) listHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - 8
	if m.preview != "" {
		h -= 12
	}
	if h < 3 {
		h = 3
	}
	return h
}

// Selection returns what verbs act on: the entry under the cursor of the
// active panel, plus the directory of the other panel when there is one.
func (m *Model) Selection() types.Selection {
	sel := m.activePanel().selection()
	if other, ok := m.otherPanel(); ok {
		sel = sel.WithOtherPanel(other.Dir())
	}
	return sel
}

// LeaveCommand is the command to hand to the parent shell after exit.
func (m *Model) LeaveCommand() string {
	return m.leaveCmd
}

// Output is the text to print after exit (print_path and friends).
func (m *Model) Output() string {
	return m.output
}

// Getters

func (m *Model) Panels() []common.PanelReader {
	out := make([]common.PanelReader, len(m.panels))
	for i, p := range m.panels {
		out[i] = p
	}
	return out
}

func (m *Model) ActivePanel() int {
	return m.active
}

func (m *Model) Mode() types.Mode {
	return m.mode
}

func (m *Model) Input() string {
	return m.input
}

func (m *Model) Status() string {
	return m.status
}

func (m *Model) StatusIsError() bool {
	return m.statusErr
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) HelpView() string {
	m.help.ShowAll = true
	return m.help.View(verbKeys(m.engine.Registry().Bindings()))
}

func (m *Model) Preview() string {
	return m.preview
}

func (m *Model) Columns() common.Columns {
	return m.cols
}

func (m *Model) Width() int {
	return m.width
}

// CurrentDir returns the directory of the active panel
func (m *Model) CurrentDir() string {
	return m.activePanel().Dir()
}

// Cursor returns the cursor of the active panel
func (m *Model) Cursor() int {
	return m.activePanel().Cursor()
}
