package registry

import (
	"sort"

	"verbtree/internal/verb"
	"verbtree/pkg/types"
)

// index maps a key chord or shortcut to the verbs bound to it, oldest first.
// Binding a verb removes the earlier bindings its selection filter covers,
// so lookups always see the last writer.
type index map[string][]*verb.Verb

func (ix index) bind(key string, v *verb.Verb) {
	var kept []*verb.Verb
	for _, old := range ix[key] {
		if !v.Filter().Covers(old.Filter()) {
			kept = append(kept, old)
		}
	}
	ix[key] = append(kept, v)
}

// lookup returns the most recent verb bound to key that accepts t.
func (ix index) lookup(key string, t types.SelectionType) *verb.Verb {
	bound := ix[key]
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i].Accepts(t) {
			return bound[i]
		}
	}
	return nil
}

// owns reports whether v still holds key.
func (ix index) owns(key string, v *verb.Verb) bool {
	for _, b := range ix[key] {
		if b == v {
			return true
		}
	}
	return false
}

func (ix index) keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
