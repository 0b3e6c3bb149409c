// Package substitute turns a matched verb and the selection context into the
// concrete command line or internal argument it stands for.
package substitute

import (
	"path/filepath"
	"strings"

	"verbtree/internal/errors"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-homedir"
)

// Tokens every template may use without declaring them in the invocation.
const (
	TokenFile                = "file"
	TokenParent              = "parent"
	TokenDirectory           = "directory"
	TokenOtherPanelDirectory = "other-panel-directory"
)

// External builds the shell command line of an external verb. Each
// substituted value is quoted to stay a single shell word; the literal parts
// of the template are kept as written.
func External(v *verb.Verb, sel types.Selection, args verb.Bindings) (string, error) {
	exec, ok := v.Execution().(verb.ExternalExecution)
	if !ok {
		return "", errors.InvalidVerbf(v.Name(), "not an external verb")
	}
	return expand(v, exec.Template(), sel, args, quote)
}

// Internal returns the argument handed to the state machine along with the
// action of an internal verb. An argument template is expanded without any
// quoting; otherwise the bound values are joined in invocation order.
func Internal(v *verb.Verb, sel types.Selection, args verb.Bindings) (string, error) {
	exec, ok := v.Execution().(verb.InternalExecution)
	if !ok {
		return "", errors.InvalidVerbf(v.Name(), "not an internal verb")
	}
	if exec.Arg != "" {
		return expand(v, exec.ArgTemplate(), sel, args, func(s string) string { return s })
	}

	p, ok := v.Invocation()
	if !ok {
		return "", nil
	}
	var values []string
	for _, seg := range p.Placeholders() {
		text, bound := args[seg.Name]
		if !bound {
			continue
		}
		value, err := resolve(seg.Name, text, seg.Kind, sel)
		if err != nil {
			return "", err
		}
		values = append(values, value)
	}
	return strings.Join(values, " "), nil
}

func expand(v *verb.Verb, tmpl verb.Pattern, sel types.Selection, args verb.Bindings, q func(string) string) (string, error) {
	invocation, hasInvocation := v.Invocation()

	var sb strings.Builder
	for _, seg := range tmpl.Segments() {
		if !seg.IsPlaceholder() {
			sb.WriteString(seg.Literal)
			continue
		}
		kind := seg.Kind
		if kind == verb.KindNone && hasInvocation {
			kind, _ = invocation.KindOf(seg.Name)
		}
		value, err := lookup(seg.Name, kind, sel, args)
		if err != nil {
			return "", err
		}
		sb.WriteString(q(value))
	}
	return sb.String(), nil
}

func lookup(name string, kind verb.Kind, sel types.Selection, args verb.Bindings) (string, error) {
	if kind == verb.OtherPanelDirectory {
		return otherPanel(name, sel)
	}
	if text, ok := args[name]; ok {
		return resolve(name, text, kind, sel)
	}

	switch name {
	case TokenFile:
		return require(name, sel.Path)
	case TokenParent:
		return require(name, sel.Parent())
	case TokenDirectory:
		return require(name, sel.Directory())
	case TokenOtherPanelDirectory:
		return otherPanel(name, sel)
	}
	return "", errors.NewVerbError("missing argument", name, errors.MissingArgument, nil)
}

// resolve interprets bound text according to the placeholder kind.
func resolve(name, text string, kind verb.Kind, sel types.Selection) (string, error) {
	switch kind {
	case verb.PathFromParent:
		return resolvePath(name, text, sel.Parent())
	case verb.PathFromDirectory:
		return resolvePath(name, text, sel.Directory())
	case verb.OtherPanelDirectory:
		return otherPanel(name, sel)
	}
	return text, nil
}

func resolvePath(name, text, base string) (string, error) {
	p, err := homedir.Expand(text)
	if err != nil {
		return "", errors.NewVerbError("cannot expand path", name, errors.InvalidPath, err)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if base == "" {
		return "", errors.NewVerbError("no selection to resolve path against", name, errors.MissingArgument, nil)
	}
	return filepath.Join(base, p), nil
}

func otherPanel(name string, sel types.Selection) (string, error) {
	if !sel.HasOtherPanel() {
		return "", errors.NewVerbError("only one panel is open", name, errors.NoOtherPanel, nil)
	}
	return sel.OtherPanelDir, nil
}

func require(name, value string) (string, error) {
	if value == "" {
		return "", errors.NewVerbError("nothing selected", name, errors.MissingArgument, nil)
	}
	return value, nil
}

func quote(s string) string {
	return shellquote.Join(s)
}
