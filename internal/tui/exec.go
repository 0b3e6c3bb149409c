package tui

import (
	"context"
	"runtime"

	"verbtree/internal/dispatch"
	"verbtree/internal/verb"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
)

// execBridge is the dispatcher's executor inside the browser. Commands
// cannot run while bubbletea owns the terminal, so they are recorded and
// the model returns a tea.ExecProcess (or quits) once dispatch is over.
type execBridge struct {
	m *Model
}

func (b execBridge) Execute(_ context.Context, req dispatch.ExternalRequest) error {
	if req.Mode == verb.LeaveToParentShell {
		b.m.leaveCmd = req.Command
		return nil
	}
	b.m.pending = &req
	return nil
}

// Clipboard is the system clipboard, replaceable in tests.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard tools.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// verbKeys adapts registry bindings to the bubbles help component.
type verbKeys []key.Binding

func (k verbKeys) ShortHelp() []key.Binding {
	if len(k) > 6 {
		return k[:6]
	}
	return k
}

func (k verbKeys) FullHelp() [][]key.Binding {
	const perColumn = 8
	var columns [][]key.Binding
	for i := 0; i < len(k); i += perColumn {
		end := i + perColumn
		if end > len(k) {
			end = len(k)
		}
		columns = append(columns, k[i:end])
	}
	return columns
}

// openCommand is the command line opening path with the system default
// application.
func openCommand(path string) string {
	opener := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "windows":
		opener = "start"
	}
	return opener + " " + shellquote.Join(path)
}

func cdCommand(dir string) string {
	return "cd " + shellquote.Join(dir)
}

func externalRequest(command string, mode verb.ExternalMode) *dispatch.ExternalRequest {
	return &dispatch.ExternalRequest{ID: uuid.New(), Command: command, Mode: mode}
}
