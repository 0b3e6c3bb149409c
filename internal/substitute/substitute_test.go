package substitute

import (
	"path/filepath"
	"testing"

	"verbtree/internal/errors"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"
)

func builtin(t *testing.T, name string) *verb.Verb {
	t.Helper()
	for _, v := range verb.Builtins() {
		if v.Name() == name {
			return v
		}
	}
	t.Fatalf("no built-in verb %q", name)
	return nil
}

func build(t *testing.T, b *verb.Builder) *verb.Verb {
	t.Helper()
	v, err := b.Build()
	trequire.NoError(t, err)
	return v
}

var cFile = types.Selection{Path: "/a/b/c.txt", Type: types.File}

func TestCopyResolvesAgainstParent(t *testing.T) {
	copyVerb := build(t, verb.NewExternal("copy {newpath:path-from-parent}", "cp -r {file} {newpath:path-from-parent}", verb.StayInApp))

	p, _ := copyVerb.Invocation()
	args, ok := p.Match("copy ../d.txt")
	trequire.True(t, ok)

	cmd, err := External(copyVerb, cFile, args)
	trequire.NoError(t, err)
	assert.Equal(t, "cp -r /a/b/c.txt /a/d.txt", cmd)

	again, err := External(copyVerb, cFile, args)
	trequire.NoError(t, err)
	assert.Equal(t, cmd, again)
}

func TestPlaceholderKinds(t *testing.T) {
	tests := []struct {
		name    string
		verb    string
		sel     types.Selection
		args    verb.Bindings
		want    string
		wantErr func(error) bool
	}{
		{
			name: "path from parent, absolute",
			verb: "move",
			sel:  cFile,
			args: verb.Bindings{"newpath": "/tmp/../srv/d.txt"},
			want: "mv /a/b/c.txt /srv/d.txt",
		},
		{
			name: "path from directory on a directory",
			verb: "mkdir",
			sel:  types.Selection{Path: "/a/b", Type: types.Directory},
			args: verb.Bindings{"subpath": "new/sub"},
			want: "mkdir -p /a/b/new/sub",
		},
		{
			name: "path from directory on a file",
			verb: "mkdir",
			sel:  cFile,
			args: verb.Bindings{"subpath": "new"},
			want: "mkdir -p /a/b/new",
		},
		{
			name: "other panel",
			verb: "copy_to_panel",
			sel:  cFile.WithOtherPanel("/x/y"),
			want: "cp -r /a/b/c.txt /x/y",
		},
		{
			name:    "other panel missing",
			verb:    "copy_to_panel",
			sel:     cFile,
			wantErr: errors.IsNoOtherPanel,
		},
		{
			name:    "path argument missing",
			verb:    "copy",
			sel:     cFile,
			wantErr: errors.IsMissingArgument,
		},
		{
			name:    "nothing selected",
			verb:    "copy",
			sel:     types.Selection{},
			args:    verb.Bindings{"newpath": "d.txt"},
			wantErr: errors.IsMissingArgument,
		},
		{
			name: "directory token",
			verb: "cd",
			sel:  types.Selection{Path: "/a/b", Type: types.Directory},
			want: "cd /a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := External(builtin(t, tt.verb), tt.sel, tt.args)
			if tt.wantErr != nil {
				trequire.Error(t, err)
				assert.True(t, tt.wantErr(err), err.Error())
				assert.Empty(t, cmd)
				return
			}
			trequire.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestValuesStayOneShellWord(t *testing.T) {
	v := build(t, verb.NewExternal("tag {label}", "tag -l {label} {file}", verb.StayInApp))
	sel := types.Selection{Path: "/tmp/my file; rm -rf ~", Type: types.File}

	for _, label := range []string{"two words", "$(whoami)", "it's", "a|b&c", "`id`"} {
		cmd, err := External(v, sel, verb.Bindings{"label": label})
		trequire.NoError(t, err)

		words, err := shellquote.Split(cmd)
		trequire.NoError(t, err, cmd)
		assert.Equal(t, []string{"tag", "-l", label, sel.Path}, words, cmd)
	}

	cmd, err := External(v, sel, verb.Bindings{"label": "x"})
	trequire.NoError(t, err)
	assert.Equal(t, "tag -l x '/tmp/my file; rm -rf ~'", cmd)
}

func TestHomeExpansion(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	cmd, err := External(builtin(t, "copy"), cFile, verb.Bindings{"newpath": "~/backup"})
	trequire.NoError(t, err)

	words, err := shellquote.Split(cmd)
	trequire.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "backup"), words[3])
}

func TestKeyOnlyVerbMissingArgument(t *testing.T) {
	v := build(t, verb.New("", verb.ExternalExecution{Command: "echo {msg}"}).WithAltKey('m'))
	_, err := External(v, cFile, nil)
	trequire.Error(t, err)
	assert.True(t, errors.IsMissingArgument(err))

	var verbErr *errors.VerbError
	trequire.True(t, errors.As(err, &verbErr))
	assert.Equal(t, "msg", verbErr.Subject())
}

func TestInternalArgument(t *testing.T) {
	t.Run("argument template", func(t *testing.T) {
		exec, ok, err := verb.ParseInternalExecution(":focus {path}")
		trequire.NoError(t, err)
		trequire.True(t, ok)
		v := build(t, verb.New("goto {path:path-from-parent}", exec))

		arg, err := Internal(v, cFile, verb.Bindings{"path": "../x"})
		trequire.NoError(t, err)
		assert.Equal(t, "/a/x", arg)

		// no quoting for in-process arguments
		arg, err = Internal(v, cFile, verb.Bindings{"path": "my dir"})
		trequire.NoError(t, err)
		assert.Equal(t, "/a/b/my dir", arg)
	})

	t.Run("bound values", func(t *testing.T) {
		v := build(t, verb.New("focus {path}", verb.InternalExecution{Action: verb.Focus}))
		arg, err := Internal(v, cFile, verb.Bindings{"path": "src"})
		trequire.NoError(t, err)
		assert.Equal(t, "src", arg)
	})

	t.Run("no argument", func(t *testing.T) {
		arg, err := Internal(builtin(t, "quit"), cFile, nil)
		trequire.NoError(t, err)
		assert.Empty(t, arg)
	})

	t.Run("wrong execution kind", func(t *testing.T) {
		_, err := Internal(builtin(t, "copy"), cFile, nil)
		assert.True(t, errors.IsInvalidVerb(err))
		_, err = External(builtin(t, "quit"), cFile, nil)
		assert.True(t, errors.IsInvalidVerb(err))
	})
}
