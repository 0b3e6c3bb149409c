package verb

import (
	"fmt"
	"strings"
)

// ExternalMode tells whether an external command runs under the browser
// or is handed to the shell that launched it.
type ExternalMode int

const (
	StayInApp ExternalMode = iota
	LeaveToParentShell
)

func (m ExternalMode) String() string {
	if m == LeaveToParentShell {
		return "leave_to_parent_shell"
	}
	return "stay_in_app"
}

// Execution is what a verb does once resolved. It is one of
// InternalExecution or ExternalExecution.
type Execution interface {
	isExecution()
	fmt.Stringer
}

// InternalExecution triggers an in-process action. Bang selects the
// toggle/paired variant of the action. Arg, when set, is a template for
// the argument handed to the action.
type InternalExecution struct {
	Action Internal
	Bang   bool
	Arg    string
	arg    Pattern
}

func (InternalExecution) isExecution() {}

func (e InternalExecution) String() string {
	s := ":" + e.Action.Name()
	if e.Bang {
		s += "!"
	}
	if e.Arg != "" {
		s += " " + e.Arg
	}
	return s
}

// ArgTemplate returns the parsed argument template.
func (e InternalExecution) ArgTemplate() Pattern {
	return e.arg
}

// NewInternalExecution builds an internal execution, parsing its argument template.
func NewInternalExecution(action Internal, bang bool, arg string) (InternalExecution, error) {
	e := InternalExecution{Action: action, Bang: bang, Arg: arg}
	if arg != "" {
		p, err := parseTemplate(arg)
		if err != nil {
			return InternalExecution{}, err
		}
		e.arg = p
	}
	return e, nil
}

// ParseInternalExecution parses the config form ":name[!] [arg template]".
func ParseInternalExecution(s string) (InternalExecution, bool, error) {
	if !strings.HasPrefix(s, ":") {
		return InternalExecution{}, false, nil
	}
	name, arg, _ := strings.Cut(strings.TrimPrefix(s, ":"), " ")
	bang := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")
	action, ok := ParseInternal(name)
	if !ok {
		return InternalExecution{}, true, fmt.Errorf("unknown internal %q", name)
	}
	e, err := NewInternalExecution(action, bang, strings.TrimSpace(arg))
	return e, true, err
}

// ExternalExecution runs a shell command built from Command.
type ExternalExecution struct {
	Command string
	Mode    ExternalMode
	tmpl    Pattern
}

func (ExternalExecution) isExecution() {}

func (e ExternalExecution) String() string {
	return e.Command
}

// Template returns the parsed command template.
func (e ExternalExecution) Template() Pattern {
	return e.tmpl
}

// NewExternalExecution parses the command template.
func NewExternalExecution(command string, mode ExternalMode) (ExternalExecution, error) {
	if strings.TrimSpace(command) == "" {
		return ExternalExecution{}, fmt.Errorf("empty command")
	}
	tmpl, err := parseTemplate(command)
	if err != nil {
		return ExternalExecution{}, err
	}
	return ExternalExecution{Command: command, Mode: mode, tmpl: tmpl}, nil
}
