package verb

import (
	"testing"

	"verbtree/internal/errors"
	"verbtree/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExternal(t *testing.T) {
	v, err := NewExternal("copy {newpath:path-from-parent}", "cp -r {file} {newpath:path-from-parent}", StayInApp).
		WithShortcut("cp").
		WithStype(types.File).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "copy", v.Name())
	assert.Equal(t, []string{"cp"}, v.Shortcuts())
	assert.Equal(t, FileOnly, v.Filter())
	assert.True(t, v.Accepts(types.File))
	assert.False(t, v.Accepts(types.Directory))
	assert.False(t, v.IsInternal())
	assert.Equal(t, Description{Text: "cp -r {file} {newpath:path-from-parent}", Code: true}, v.Description())

	exec, ok := v.Execution().(ExternalExecution)
	require.True(t, ok)
	assert.Equal(t, StayInApp, exec.Mode)
	assert.Len(t, exec.Template().Placeholders(), 2)
}

func TestBuildInternal(t *testing.T) {
	v, err := NewInternal(Quit).WithControlKey('q').WithShortcut("q").Build()
	require.NoError(t, err)
	assert.Equal(t, "quit", v.Name())
	assert.True(t, v.IsInternal())
	assert.Equal(t, []types.KeyChord{types.CtrlKey('q')}, v.Keys())
	assert.Equal(t, "quit", v.Description().Text)

	p, ok := v.Invocation()
	require.True(t, ok)
	assert.Equal(t, "quit", p.String())

	bang := NewInternalBang(StartEndPanel).MustBuild()
	exec := bang.Execution().(InternalExecution)
	assert.True(t, exec.Bang)
	assert.Equal(t, ":start_end_panel!", exec.String())
}

func TestBuildErrors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		_, err := New("", InternalExecution{Action: Refresh}).Build()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidVerb(err))
	})

	t.Run("malformed pattern", func(t *testing.T) {
		_, err := NewExternal("copy {newpath", "cp {file} {newpath}", StayInApp).Build()
		assert.True(t, errors.IsInvalidVerb(err))
	})

	t.Run("malformed command", func(t *testing.T) {
		_, err := NewExternal("edit", "vi {file", StayInApp).Build()
		assert.True(t, errors.IsInvalidVerb(err))
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := NewInternal(Quit).WithControlKey('q').WithKey(types.MustParseKey("ctrl-q")).Build()
		assert.True(t, errors.IsDuplicateBinding(err))
	})

	t.Run("duplicate shortcut", func(t *testing.T) {
		_, err := NewInternal(Quit).WithShortcut("q").WithShortcut("q").Build()
		assert.True(t, errors.IsDuplicateBinding(err))
	})

	t.Run("duplicate stype", func(t *testing.T) {
		_, err := NewExternal("rm", "rm {file}", StayInApp).WithStype(types.File).WithStype(types.File).Build()
		assert.True(t, errors.IsDuplicateBinding(err))
	})

	t.Run("shortcut with whitespace", func(t *testing.T) {
		_, err := NewInternal(Quit).WithShortcut("q q").Build()
		assert.True(t, errors.IsInvalidVerb(err))
	})

	t.Run("first error wins", func(t *testing.T) {
		_, err := NewInternal(Quit).WithShortcut("").WithShortcut("q").WithShortcut("q").Build()
		assert.True(t, errors.IsInvalidVerb(err))
	})
}

func TestKeyOnlyExternalVerb(t *testing.T) {
	v, err := New("", ExternalExecution{Command: "git status"}).WithAltKey('g').Build()
	require.NoError(t, err)
	assert.Equal(t, "git", v.Name())
	_, ok := v.Invocation()
	assert.False(t, ok)

	// struct-literal executions get their template parsed
	exec := v.Execution().(ExternalExecution)
	assert.Equal(t, "git status", exec.Template().String())
}

func TestParseInternalExecution(t *testing.T) {
	e, ok, err := ParseInternalExecution(":focus ~/dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Focus, e.Action)
	assert.False(t, e.Bang)
	assert.Equal(t, "~/dev", e.Arg)

	e, ok, err = ParseInternalExecution(":toggle_preview!")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, e.Bang)

	_, ok, err = ParseInternalExecution(":does_not_exist")
	assert.True(t, ok)
	assert.Error(t, err)

	_, ok, err = ParseInternalExecution("echo {file}")
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestFilter(t *testing.T) {
	assert.True(t, Any.Covers(FileOnly))
	assert.False(t, FileOnly.Covers(Any))
	assert.False(t, FileOnly.Covers(DirectoryOnly))
	assert.True(t, FileOnly.Overlaps(Any))
	assert.False(t, FileOnly.Overlaps(DirectoryOnly))
	assert.False(t, DirectoryOnly.Accepts(types.Undefined))
	assert.True(t, Any.Accepts(types.Undefined))

	f, err := ParseFilter("directory")
	require.NoError(t, err)
	assert.Equal(t, DirectoryOnly, f)
	_, err = ParseFilter("socket")
	assert.Error(t, err)
}

func TestInternalNames(t *testing.T) {
	for _, i := range Internals() {
		parsed, ok := ParseInternal(i.Name())
		require.True(t, ok, i.Name())
		assert.Equal(t, i, parsed)
		assert.NotEmpty(t, i.Description(), i.Name())
	}
	assert.Equal(t, "unknown", Internal(-1).Name())
}
