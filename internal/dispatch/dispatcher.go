package dispatch

import (
	"context"
	"fmt"

	"verbtree/internal/errors"
	"verbtree/internal/log"
	"verbtree/internal/registry"
	"verbtree/internal/verb"
	"verbtree/pkg/types"
)

// Outcome tells the caller what to do once a request was handed off.
type Outcome int

const (
	// Handled needs nothing more from the caller.
	Handled Outcome = iota
	// Refresh asks the application to reload its view.
	Refresh
	// Quit asks the application to release the terminal and exit.
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Refresh:
		return "refresh"
	case Quit:
		return "quit"
	default:
		return "handled"
	}
}

// StateMachine applies internal requests to the application.
type StateMachine interface {
	ApplyInternal(req InternalRequest) (Outcome, error)
}

// Executor runs external commands, or hands them to the parent shell.
type Executor interface {
	Execute(ctx context.Context, req ExternalRequest) error
}

// Dispatcher routes requests. It keeps no state between dispatches.
type Dispatcher struct {
	state StateMachine
	exec  Executor
}

func NewDispatcher(state StateMachine, exec Executor) *Dispatcher {
	return &Dispatcher{state: state, exec: exec}
}

// Dispatch hands req to its collaborator. A StayInApp command asks for a
// refresh once it completes; a LeaveToParentShell command ends the
// application.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	switch r := req.(type) {
	case InternalRequest:
		log.LogWithFields(
			log.F("action", r.Action.Name()),
			log.F("bang", r.Bang),
		).Debug("applying internal request")
		return d.state.ApplyInternal(r)
	case ExternalRequest:
		logger := log.LogWithFields(
			log.F("request_id", r.ID.String()),
			log.F("mode", r.Mode.String()),
		)
		logger.Infof("executing %s", r.Command)
		if err := d.exec.Execute(ctx, r); err != nil {
			logger.Warnf("command failed: %v", err)
			return Handled, errors.Wrap(err, "external command failed")
		}
		if r.Mode == verb.LeaveToParentShell {
			return Quit, nil
		}
		return Refresh, nil
	}
	return Handled, fmt.Errorf("unknown request %T", req)
}

// Engine ties the registry, substitution and dispatch together for one
// input event at a time. The registry is read from the holder on every
// event so reloads take effect immediately.
type Engine struct {
	registry   *registry.Holder
	dispatcher *Dispatcher
}

func NewEngine(h *registry.Holder, d *Dispatcher) *Engine {
	return &Engine{registry: h, dispatcher: d}
}

// Registry returns the registry currently in use.
func (e *Engine) Registry() *registry.Registry {
	return e.registry.Load()
}

// ResolveKey finds the verb bound to chord and resolves it. ok is false
// when no verb applies.
func (e *Engine) ResolveKey(chord types.KeyChord, sel types.Selection) (req Request, ok bool, err error) {
	v := e.registry.Load().ByKey(chord, sel.Type)
	if v == nil {
		return nil, false, nil
	}
	req, err = Resolve(v, sel, nil)
	return req, true, err
}

// ResolveInput finds the best verb for the typed text and resolves it.
func (e *Engine) ResolveInput(text string, sel types.Selection) (req Request, ok bool, err error) {
	m, found := e.registry.Load().Resolve(text, sel.Type)
	if !found {
		return nil, false, nil
	}
	req, err = Resolve(m.Verb, sel, m.Args)
	return req, true, err
}

// HandleKey resolves and dispatches a key press.
func (e *Engine) HandleKey(ctx context.Context, chord types.KeyChord, sel types.Selection) (Outcome, bool, error) {
	req, ok, err := e.ResolveKey(chord, sel)
	return e.handle(ctx, req, ok, err)
}

// HandleInput resolves and dispatches typed text.
func (e *Engine) HandleInput(ctx context.Context, text string, sel types.Selection) (Outcome, bool, error) {
	req, ok, err := e.ResolveInput(text, sel)
	return e.handle(ctx, req, ok, err)
}

func (e *Engine) handle(ctx context.Context, req Request, ok bool, err error) (Outcome, bool, error) {
	if !ok {
		return Handled, false, nil
	}
	if err != nil {
		log.LogWithError(err).Debug("verb rejected")
		return Handled, true, err
	}
	out, err := e.dispatcher.Dispatch(ctx, req)
	return out, true, err
}
