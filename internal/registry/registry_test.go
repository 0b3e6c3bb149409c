package registry

import (
	"testing"

	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ext(t *testing.T, b *verb.Builder) *verb.Verb {
	t.Helper()
	v, err := b.Build()
	require.NoError(t, err)
	return v
}

func TestKeyLastWriterWins(t *testing.T) {
	first := ext(t, verb.NewExternal("edit", "vi {file}", verb.StayInApp).WithControlKey('e'))
	r := New([]*verb.Verb{first}, nil)
	assert.Same(t, first, r.ByKey(types.CtrlKey('e'), types.File))

	second := ext(t, verb.NewExternal("emacs", "emacs {file}", verb.StayInApp).WithControlKey('e'))
	r = New([]*verb.Verb{first}, []*verb.Verb{second})
	for _, st := range []types.SelectionType{types.File, types.Directory, types.Undefined} {
		assert.Same(t, second, r.ByKey(types.CtrlKey('e'), st), st.String())
	}
	assert.Equal(t, []string{"ctrl-e"}, r.BoundKeys())
}

func TestShortcutLastWriterWins(t *testing.T) {
	quit := ext(t, verb.NewInternal(verb.Quit).WithShortcut("q"))
	query := ext(t, verb.NewExternal("query {sql}", "sqlite3 {file} {sql}", verb.StayInApp).WithShortcut("q"))
	r := New([]*verb.Verb{quit}, []*verb.Verb{query})

	assert.Same(t, query, r.ByShortcut("q", types.File))
	assert.Nil(t, r.ByShortcut("qu", types.File))
}

func TestScopedOverrideKeepsOtherTypes(t *testing.T) {
	open := ext(t, verb.NewInternal(verb.OpenLeave).WithKey(types.KeyAltEnter))
	cd := ext(t, verb.NewExternal("cd", "cd {directory}", verb.LeaveToParentShell).
		WithStype(types.Directory).
		WithKey(types.KeyAltEnter))
	r := New([]*verb.Verb{open, cd}, nil)

	assert.Same(t, cd, r.ByKey(types.KeyAltEnter, types.Directory))
	assert.Same(t, open, r.ByKey(types.KeyAltEnter, types.File))

	// an unrestricted binding declared later takes the key for every type
	view := ext(t, verb.NewExternal("view", "less {file}", verb.StayInApp).WithKey(types.KeyAltEnter))
	r = New([]*verb.Verb{open, cd}, []*verb.Verb{view})
	assert.Same(t, view, r.ByKey(types.KeyAltEnter, types.Directory))
	assert.Same(t, view, r.ByKey(types.KeyAltEnter, types.File))
}

func TestSelectionFilter(t *testing.T) {
	edit := ext(t, verb.NewExternal("edit", "vi {file}", verb.StayInApp).
		WithStype(types.File).
		WithControlKey('e'))
	tree := ext(t, verb.NewExternal("tree", "tree {file}", verb.StayInApp).
		WithStype(types.Directory).
		WithControlKey('t'))
	r := New(nil, []*verb.Verb{edit, tree})

	assert.Nil(t, r.ByKey(types.CtrlKey('e'), types.Directory))
	assert.Nil(t, r.ByKey(types.CtrlKey('t'), types.File))
	assert.Empty(t, r.ByInvocationPrefix("edit", types.Directory))
	assert.Empty(t, r.ByInvocationPrefix("tree", types.File))

	m, ok := r.Resolve("edit", types.File)
	require.True(t, ok)
	assert.Same(t, edit, m.Verb)
}

func TestSameInvocationReplaces(t *testing.T) {
	builtin := ext(t, verb.NewExternal("mkdir {subpath}", "mkdir -p {subpath:path-from-directory}", verb.StayInApp).
		WithShortcut("md"))
	user := ext(t, verb.NewExternal("mkdir {subpath}", "mkdir {subpath:path-from-directory}", verb.StayInApp))
	r := New([]*verb.Verb{builtin}, []*verb.Verb{user})

	require.Equal(t, 1, r.Len())
	assert.Same(t, user, r.Verbs()[0])
	assert.False(t, r.IsBuiltin(user))
	// the replaced verb's bindings go with it
	assert.Nil(t, r.ByShortcut("md", types.Directory))
}

func TestByInvocationPrefix(t *testing.T) {
	builtins := verb.Builtins()
	r := New(builtins, nil)

	t.Run("complete match with argument", func(t *testing.T) {
		m, ok := r.Resolve("copy ../d.txt", types.File)
		require.True(t, ok)
		assert.Equal(t, "copy", m.Verb.Name())
		assert.Equal(t, verb.Bindings{"newpath": "../d.txt"}, m.Args)
	})

	t.Run("through shortcut", func(t *testing.T) {
		m, ok := r.Resolve("cp ../d.txt", types.File)
		require.True(t, ok)
		assert.Equal(t, "copy", m.Verb.Name())
		assert.Equal(t, verb.Bindings{"newpath": "../d.txt"}, m.Args)

		m, ok = r.Resolve("q", types.File)
		require.True(t, ok)
		assert.Equal(t, "quit", m.Verb.Name())
	})

	t.Run("prefix candidates", func(t *testing.T) {
		matches := r.ByInvocationPrefix("toggle_", types.File)
		require.NotEmpty(t, matches)
		for _, m := range matches {
			assert.False(t, m.Complete)
			assert.Contains(t, m.Verb.Name(), "toggle_")
		}
		_, ok := r.Resolve("toggle_", types.File)
		assert.False(t, ok)
	})

	t.Run("complete first", func(t *testing.T) {
		matches := r.ByInvocationPrefix("copy_to_panel", types.File)
		require.NotEmpty(t, matches)
		assert.True(t, matches[0].Complete)
		assert.Equal(t, "copy_to_panel", matches[0].Verb.Name())
	})

	t.Run("no match is empty", func(t *testing.T) {
		assert.Empty(t, r.ByInvocationPrefix("zzz", types.File))
		assert.Empty(t, r.ByInvocationPrefix("   ", types.File))
	})
}

func TestSpecificityRanking(t *testing.T) {
	loose := ext(t, verb.NewExternal("git {args}", "git {args}", verb.StayInApp))
	tight := ext(t, verb.NewExternal("git commit {msg}", "git commit -m {msg}", verb.StayInApp))
	r := New(nil, []*verb.Verb{tight, loose})

	m, ok := r.Resolve("git commit wip", types.File)
	require.True(t, ok)
	assert.Same(t, tight, m.Verb)
	assert.Equal(t, verb.Bindings{"msg": "wip"}, m.Args)

	m, ok = r.Resolve("git status", types.File)
	require.True(t, ok)
	assert.Same(t, loose, m.Verb)

	// equal specificity: the later verb wins
	other := ext(t, verb.NewExternal("git {cmd}", "hub {cmd}", verb.StayInApp).WithStype(types.Directory))
	r = New(nil, []*verb.Verb{loose, other})
	m, ok = r.Resolve("git status", types.Directory)
	require.True(t, ok)
	assert.Same(t, other, m.Verb)
}

func TestFilter(t *testing.T) {
	r := New(verb.Builtins(), nil)

	toggles, err := r.Filter("toggle_*")
	require.NoError(t, err)
	require.NotEmpty(t, toggles)
	for _, v := range toggles {
		assert.Contains(t, v.Name(), "toggle_")
	}

	copies, err := r.Filter("cop*")
	require.NoError(t, err)
	var names []string
	for _, v := range copies {
		names = append(names, v.Name())
	}
	assert.Contains(t, names, "copy")
	assert.Contains(t, names, "copy_path")

	_, err = r.Filter("[")
	assert.Error(t, err)
}

func TestBindings(t *testing.T) {
	first := ext(t, verb.NewExternal("edit", "vi {file}", verb.StayInApp).WithControlKey('e').WithAltKey('e'))
	second := ext(t, verb.NewExternal("emacs", "emacs {file}", verb.StayInApp).WithControlKey('e'))
	r := New(nil, []*verb.Verb{first, second})

	bindings := r.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, []string{"alt+e"}, bindings[0].Keys())
	assert.Equal(t, "edit", bindings[0].Help().Desc)
	assert.Equal(t, []string{"ctrl+e"}, bindings[1].Keys())
	assert.Equal(t, "ctrl-e", bindings[1].Help().Key)
}
