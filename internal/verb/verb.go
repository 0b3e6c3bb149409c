// Package verb holds the verb model: what a verb is, how it is reached
// (invocation pattern, keys, shortcuts) and what it executes.
package verb

import (
	"fmt"
	"strings"
	"unicode"

	"verbtree/internal/errors"
	"verbtree/pkg/types"
)

// Filter restricts the selections a verb is offered for.
type Filter int

const (
	Any Filter = iota
	FileOnly
	DirectoryOnly
)

func (f Filter) String() string {
	switch f {
	case FileOnly:
		return "file"
	case DirectoryOnly:
		return "directory"
	default:
		return "any"
	}
}

// ParseFilter parses the apply_to values of the config file.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return Any, nil
	case "file":
		return FileOnly, nil
	case "directory", "dir":
		return DirectoryOnly, nil
	}
	return Any, fmt.Errorf("unknown selection type %q", s)
}

// Accepts reports whether a selection of type t may use the verb.
func (f Filter) Accepts(t types.SelectionType) bool {
	switch f {
	case FileOnly:
		return t == types.File
	case DirectoryOnly:
		return t == types.Directory
	default:
		return true
	}
}

// Covers reports whether every selection accepted by o is accepted by f.
func (f Filter) Covers(o Filter) bool {
	return f == Any || f == o
}

// Overlaps reports whether some selection is accepted by both filters.
func (f Filter) Overlaps(o Filter) bool {
	return f == Any || o == Any || f == o
}

// Description is either authored text or the command a verb runs.
type Description struct {
	Text string
	Code bool
}

func (d Description) String() string {
	if d.Code {
		return "`" + d.Text + "`"
	}
	return d.Text
}

// Verb is one user-invokable action. Values are immutable once built.
type Verb struct {
	name          string
	invocation    Pattern
	hasInvocation bool
	execution     Execution
	description   Description
	keys          []types.KeyChord
	shortcuts     []string
	filter        Filter
}

// Name is the verb identity: the internal tag or the invocation name.
func (v *Verb) Name() string {
	return v.name
}

// Invocation returns the invocation pattern, if the verb has one.
func (v *Verb) Invocation() (Pattern, bool) {
	return v.invocation, v.hasInvocation
}

func (v *Verb) Execution() Execution {
	return v.execution
}

func (v *Verb) Description() Description {
	return v.description
}

// Keys returns the key chords bound to the verb.
func (v *Verb) Keys() []types.KeyChord {
	return append([]types.KeyChord(nil), v.keys...)
}

// Shortcuts returns the mnemonic strings bound to the verb.
func (v *Verb) Shortcuts() []string {
	return append([]string(nil), v.shortcuts...)
}

func (v *Verb) Filter() Filter {
	return v.filter
}

// Accepts reports whether the verb applies to a selection of type t.
func (v *Verb) Accepts(t types.SelectionType) bool {
	return v.filter.Accepts(t)
}

// IsInternal reports whether the verb runs in-process.
func (v *Verb) IsInternal() bool {
	_, ok := v.execution.(InternalExecution)
	return ok
}

func (v *Verb) String() string {
	if v.hasInvocation {
		return v.invocation.String()
	}
	return v.name
}

// Builder validates a verb while it is being declared. The first error is
// kept and returned by Build.
type Builder struct {
	v   Verb
	err error
}

// New starts a verb. An empty invocation means the verb is only reachable
// through keys or shortcuts.
func New(invocation string, execution Execution) *Builder {
	b := &Builder{v: Verb{execution: execution}}
	if execution == nil {
		b.err = errors.InvalidVerbf(invocation, "no execution")
		return b
	}
	if invocation = strings.TrimSpace(invocation); invocation != "" {
		p, err := ParsePattern(invocation)
		if err != nil {
			b.err = err
			return b
		}
		b.v.invocation = p
		b.v.hasInvocation = true
	}

	switch e := execution.(type) {
	case InternalExecution:
		// executions declared as struct literals still need their template parsed
		if e.arg.source != e.Arg {
			parsed, err := NewInternalExecution(e.Action, e.Bang, e.Arg)
			if err != nil {
				return b.fail(err)
			}
			b.v.execution = parsed
		}
		b.v.name = e.Action.Name()
		b.v.description = Description{Text: e.Action.Description()}
	case ExternalExecution:
		if e.tmpl.source != e.Command {
			parsed, err := NewExternalExecution(e.Command, e.Mode)
			if err != nil {
				return b.fail(errors.NewVerbError("invalid command", invocation, errors.InvalidVerb, err))
			}
			b.v.execution = parsed
		}
		b.v.name = b.v.invocation.Name()
		if fields := strings.Fields(e.Command); b.v.name == "" && len(fields) > 0 {
			b.v.name = fields[0]
		}
		b.v.description = Description{Text: e.Command, Code: true}
	}
	return b
}

// NewInternal declares a verb running the given internal action,
// invoked by its name.
func NewInternal(action Internal) *Builder {
	return New(action.InvocationPattern(), InternalExecution{Action: action})
}

// NewInternalBang declares the bang (toggle) variant of an internal action.
func NewInternalBang(action Internal) *Builder {
	return New(action.InvocationPattern(), InternalExecution{Action: action, Bang: true})
}

// NewExternal declares a verb running a shell command.
func NewExternal(invocation, command string, mode ExternalMode) *Builder {
	execution, err := NewExternalExecution(command, mode)
	if err != nil {
		return &Builder{err: errors.NewVerbError("invalid command", invocation, errors.InvalidVerb, err)}
	}
	return New(invocation, execution)
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// WithKey binds a key chord.
func (b *Builder) WithKey(key types.KeyChord) *Builder {
	for _, k := range b.v.keys {
		if k == key {
			return b.fail(errors.NewVerbError("duplicate key "+key.String(), b.v.name, errors.DuplicateBinding, nil))
		}
	}
	b.v.keys = append(b.v.keys, key)
	return b
}

// WithControlKey binds ctrl + r.
func (b *Builder) WithControlKey(r rune) *Builder {
	return b.WithKey(types.CtrlKey(r))
}

// WithAltKey binds alt + r.
func (b *Builder) WithAltKey(r rune) *Builder {
	return b.WithKey(types.AltKey(r))
}

// WithShortcut binds a short mnemonic string.
func (b *Builder) WithShortcut(shortcut string) *Builder {
	if shortcut == "" || strings.IndexFunc(shortcut, unicode.IsSpace) >= 0 {
		return b.fail(errors.InvalidVerbf(b.v.name, "invalid shortcut %q", shortcut))
	}
	for _, s := range b.v.shortcuts {
		if s == shortcut {
			return b.fail(errors.NewVerbError("duplicate shortcut "+shortcut, b.v.name, errors.DuplicateBinding, nil))
		}
	}
	b.v.shortcuts = append(b.v.shortcuts, shortcut)
	return b
}

// WithStype restricts the verb to selections of type t.
func (b *Builder) WithStype(t types.SelectionType) *Builder {
	switch t {
	case types.File:
		return b.WithFilter(FileOnly)
	case types.Directory:
		return b.WithFilter(DirectoryOnly)
	}
	return b.fail(errors.InvalidVerbf(b.v.name, "cannot restrict to %s selections", t))
}

// WithFilter sets the selection filter.
func (b *Builder) WithFilter(f Filter) *Builder {
	if b.v.filter != Any {
		return b.fail(errors.NewVerbError("selection type already set", b.v.name, errors.DuplicateBinding, nil))
	}
	b.v.filter = f
	return b
}

// WithDescription replaces the derived description.
func (b *Builder) WithDescription(text string) *Builder {
	if text != "" {
		b.v.description = Description{Text: text}
	}
	return b
}

// Build freezes the verb.
func (b *Builder) Build() (*Verb, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.v.hasInvocation && len(b.v.keys) == 0 && len(b.v.shortcuts) == 0 {
		return nil, errors.InvalidVerbf(b.v.name, "verb has no invocation, key or shortcut")
	}
	v := b.v
	v.keys = append([]types.KeyChord(nil), b.v.keys...)
	v.shortcuts = append([]string(nil), b.v.shortcuts...)
	return &v, nil
}

// MustBuild is Build for static tables, which must always be valid.
func (b *Builder) MustBuild() *Verb {
	v, err := b.Build()
	if err != nil {
		panic(err)
	}
	return v
}
