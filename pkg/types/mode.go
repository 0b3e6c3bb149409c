package types

// Mode represents the current input mode of the TUI
type Mode int

const (
	// Normal is the default mode: keys go to the verb key map
	Normal Mode = iota
	// Command is the mode for typing a verb invocation
	Command
)

func (m Mode) String() string {
	if m == Command {
		return "command"
	}
	return "normal"
}
