// Package dispatch turns a resolved verb into a request and hands it to the
// collaborator able to carry it out.
package dispatch

import (
	"fmt"

	"verbtree/internal/substitute"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/google/uuid"
)

// Request is one of InternalRequest or ExternalRequest.
type Request interface {
	isRequest()
	fmt.Stringer
}

// InternalRequest asks the application state machine to run an action.
// Bang selects the paired behaviour; the state machine decides which one
// applies given its current state.
type InternalRequest struct {
	Action   verb.Internal
	Bang     bool
	Argument string
}

func (InternalRequest) isRequest() {}

func (r InternalRequest) String() string {
	s := ":" + r.Action.Name()
	if r.Bang {
		s += "!"
	}
	if r.Argument != "" {
		s += " " + r.Argument
	}
	return s
}

// ExternalRequest is a fully substituted command line, ready for a shell.
type ExternalRequest struct {
	ID      uuid.UUID
	Command string
	Mode    verb.ExternalMode
}

func (ExternalRequest) isRequest() {}

func (r ExternalRequest) String() string {
	return r.Command
}

// Resolve substitutes the selection and bound arguments into the verb's
// execution. It fails with MissingArgument or NoOtherPanel when the context
// lacks what the verb needs, in which case no request exists.
func Resolve(v *verb.Verb, sel types.Selection, args verb.Bindings) (Request, error) {
	switch exec := v.Execution().(type) {
	case verb.InternalExecution:
		arg, err := substitute.Internal(v, sel, args)
		if err != nil {
			return nil, err
		}
		return InternalRequest{Action: exec.Action, Bang: exec.Bang, Argument: arg}, nil
	case verb.ExternalExecution:
		cmd, err := substitute.External(v, sel, args)
		if err != nil {
			return nil, err
		}
		return ExternalRequest{ID: uuid.New(), Command: cmd, Mode: exec.Mode}, nil
	}
	return nil, fmt.Errorf("verb %s has no execution", v.Name())
}
