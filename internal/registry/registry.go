// Package registry merges built-in and user verbs and answers lookups by
// key, shortcut and typed invocation.
package registry

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"verbtree/internal/errors"
	"verbtree/internal/log"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gobwas/glob"
)

// Registry is an immutable, ordered set of verbs: the built-ins first,
// then user verbs. Build a new one to change it.
type Registry struct {
	verbs     []*verb.Verb
	builtin   map[*verb.Verb]bool
	keys      index
	shortcuts index
}

// Match is a verb candidate for some typed text. Complete means the text
// matched the whole invocation and Args holds the bound placeholders;
// otherwise the text is only a prefix of the verb name.
type Match struct {
	Verb     *verb.Verb
	Args     verb.Bindings
	Complete bool
}

// New folds the verbs in order. A verb whose invocation equals an earlier
// one's (for overlapping selection types) replaces it entirely; keys and
// shortcuts go to the last verb declaring them.
func New(builtins, user []*verb.Verb) *Registry {
	r := &Registry{
		builtin:   make(map[*verb.Verb]bool, len(builtins)),
		keys:      make(index),
		shortcuts: make(index),
	}
	for _, v := range builtins {
		r.add(v)
		r.builtin[v] = true
	}
	for _, v := range user {
		r.add(v)
	}
	for _, v := range r.verbs {
		for _, k := range v.Keys() {
			r.keys.bind(k.String(), v)
		}
		for _, s := range v.Shortcuts() {
			r.shortcuts.bind(s, v)
		}
	}
	return r
}

func (r *Registry) add(v *verb.Verb) {
	if p, ok := v.Invocation(); ok {
		kept := make([]*verb.Verb, 0, len(r.verbs)+1)
		for _, old := range r.verbs {
			if op, ok := old.Invocation(); ok && op.String() == p.String() && old.Filter().Overlaps(v.Filter()) {
				log.LogWithFields(log.F("invocation", p.String())).Debug("verb replaced")
				delete(r.builtin, old)
				continue
			}
			kept = append(kept, old)
		}
		r.verbs = kept
	}
	r.verbs = append(r.verbs, v)
}

// Verbs returns the merged verbs in registry order.
func (r *Registry) Verbs() []*verb.Verb {
	return append([]*verb.Verb(nil), r.verbs...)
}

func (r *Registry) Len() int {
	return len(r.verbs)
}

// IsBuiltin reports whether v comes from the built-in table.
func (r *Registry) IsBuiltin(v *verb.Verb) bool {
	return r.builtin[v]
}

// ByKey returns the verb bound to the chord for a selection of type t.
func (r *Registry) ByKey(chord types.KeyChord, t types.SelectionType) *verb.Verb {
	return r.keys.lookup(chord.String(), t)
}

// ByShortcut returns the verb whose shortcut is exactly s.
func (r *Registry) ByShortcut(s string, t types.SelectionType) *verb.Verb {
	return r.shortcuts.lookup(s, t)
}

type candidate struct {
	Match
	specificity int
	pos         int
}

// ByInvocationPrefix lists the verbs applicable to t that the typed text
// reaches: complete matches of the invocation (directly or through a
// shortcut) first, then verbs whose name starts with text. Within each
// group, more specific patterns rank first and later verbs break ties.
func (r *Registry) ByInvocationPrefix(text string, t types.SelectionType) []Match {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	word := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		word = text[:i]
	}
	viaShortcut := r.shortcuts.lookup(word, t)

	var found []candidate
	for pos, v := range r.verbs {
		if !v.Accepts(t) {
			continue
		}
		if m, specificity, ok := candidateFor(v, text, word, viaShortcut); ok {
			found = append(found, candidate{Match: m, specificity: specificity, pos: pos})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.Complete != b.Complete {
			return a.Complete
		}
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}
		return a.pos > b.pos
	})

	matches := make([]Match, len(found))
	for i, c := range found {
		matches[i] = c.Match
	}
	return matches
}

func candidateFor(v *verb.Verb, text, word string, viaShortcut *verb.Verb) (Match, int, bool) {
	p, hasPattern := v.Invocation()
	if hasPattern {
		if args, ok := p.Match(text); ok {
			return Match{Verb: v, Args: args, Complete: true}, p.Specificity(), true
		}
	}
	if v == viaShortcut {
		if !hasPattern && word == text {
			return Match{Verb: v, Args: verb.Bindings{}, Complete: true}, utf8.RuneCountInString(word), true
		}
		if hasPattern {
			if args, ok := p.MatchNamed(word, text); ok {
				// ranked as if the shortcut were written in place of the name
				specificity := p.Specificity() - utf8.RuneCountInString(p.Name()) + utf8.RuneCountInString(word)
				return Match{Verb: v, Args: args, Complete: true}, specificity, true
			}
		}
	}
	if hasPattern && p.IsPrefix(text) {
		return Match{Verb: v}, p.Specificity(), true
	}
	return Match{}, 0, false
}

// Resolve returns the best complete match for the typed text.
func (r *Registry) Resolve(text string, t types.SelectionType) (Match, bool) {
	matches := r.ByInvocationPrefix(text, t)
	if len(matches) == 0 || !matches[0].Complete {
		return Match{}, false
	}
	return matches[0], true
}

// Filter returns the verbs whose name or invocation matches the glob.
func (r *Registry) Filter(pattern string) ([]*verb.Verb, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter %q", pattern)
	}
	var out []*verb.Verb
	for _, v := range r.verbs {
		if g.Match(v.Name()) || g.Match(v.String()) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Bindings describes the keys each verb still owns, for help screens.
func (r *Registry) Bindings() []key.Binding {
	var out []key.Binding
	for _, v := range r.verbs {
		var keys, labels []string
		for _, k := range v.Keys() {
			if r.keys.owns(k.String(), v) {
				keys = append(keys, k.TeaString())
				labels = append(labels, k.String())
			}
		}
		if len(keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, "/"), v.Name()),
		))
	}
	return out
}

// BoundKeys lists the chords that resolve to some verb.
func (r *Registry) BoundKeys() []string {
	return r.keys.keys()
}
