package messages

import (
	"verbtree/internal/registry"

	"github.com/google/uuid"
)

type ErrorMsg struct {
	Err error
}

// ExecDoneMsg reports the end of an external command run in the terminal.
type ExecDoneMsg struct {
	ID  uuid.UUID
	Err error
}

// RegistryReloadedMsg is sent after the config changed and a new registry
// was published. Errors lists the user verbs that were skipped.
type RegistryReloadedMsg struct {
	Registry *registry.Registry
	Errors   []error
}

// DirectoryChangeMsg asks the active panel to show another directory.
type DirectoryChangeMsg struct {
	Path string
}
