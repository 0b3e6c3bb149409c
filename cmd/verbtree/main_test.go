package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userVerbsYAML = `
verbs:
  - invocation: "edit {file}"
    key: ctrl-e
    execution: "vi {file}"
    apply_to: file
  - invocation: home
    execution: "cd ~"
    from_shell: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCli runs the root command and returns what it printed.
func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCliHelpCommand(t *testing.T) {
	output, err := runCli(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "browse")
	assert.Contains(t, output, "verbs")
}

func TestCliVerbsList(t *testing.T) {
	conf := writeConfig(t, userVerbsYAML)

	t.Run("all", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "list")
		require.NoError(t, err)
		assert.Contains(t, output, "| verb | keys |")
		assert.Contains(t, output, "| edit {file} | ctrl-e |  | file | `vi {file}` | user |")
		assert.Contains(t, output, "| quit | ctrl-c ctrl-q | q | any | `:quit` | builtin |")
	})

	t.Run("filter", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "list", "--filter", "toggle_*")
		require.NoError(t, err)
		assert.Contains(t, output, "toggle_hidden")
		assert.NotContains(t, output, "edit {file}")
	})

	t.Run("bad_filter", func(t *testing.T) {
		_, err := runCli(t, "--config", conf, "verbs", "list", "--filter", "[")
		assert.Error(t, err)
	})
}

func TestCliVerbsResolve(t *testing.T) {
	conf := writeConfig(t, userVerbsYAML)
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	t.Run("typed_external", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "resolve", "mkdir", "new", "--path", file, "--argv")
		require.NoError(t, err)
		assert.Contains(t, output, "external (stay_in_app) mkdir -p "+filepath.Join(dir, "new"))
		assert.Contains(t, output, "[2] "+filepath.Join(dir, "new"))
	})

	t.Run("key", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "resolve", "--key", "ctrl-e", "--path", file)
		require.NoError(t, err)
		assert.Contains(t, output, "vi "+file)
	})

	t.Run("internal", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "resolve", "--key", "ctrl-p", "--path", dir)
		require.NoError(t, err)
		assert.Contains(t, output, "internal :start_end_panel!")
	})

	t.Run("no_other_panel", func(t *testing.T) {
		_, err := runCli(t, "--config", conf, "verbs", "resolve", "cpp", "--path", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only one panel is open")
	})

	t.Run("other_panel", func(t *testing.T) {
		output, err := runCli(t, "--config", conf, "verbs", "resolve", "cpp", "--path", file, "--other-panel", "/srv")
		require.NoError(t, err)
		assert.Contains(t, output, "cp -r "+file+" /srv")
	})

	t.Run("leave_to_shell_exec", func(t *testing.T) {
		outcmd := filepath.Join(t.TempDir(), "outcmd")
		output, err := runCli(t, "--config", conf, "--outcmd", outcmd, "verbs", "resolve", "home", "--path", dir, "--exec")
		require.NoError(t, err)
		assert.Contains(t, output, "outcome: quit")

		data, err := os.ReadFile(outcmd)
		require.NoError(t, err)
		assert.Equal(t, "cd ~\n", string(data))
	})

	t.Run("no_verb", func(t *testing.T) {
		_, err := runCli(t, "--config", conf, "verbs", "resolve", "zzz", "--path", file)
		assert.Error(t, err)
	})
}

func TestCliVerbsCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		output, err := runCli(t, "--config", writeConfig(t, userVerbsYAML), "verbs", "check")
		require.NoError(t, err)
		assert.Contains(t, output, "2 user verbs OK")
	})

	t.Run("invalid", func(t *testing.T) {
		conf := writeConfig(t, `
verbs:
  - invocation: "copy {newpath"
    execution: "cp {file} {newpath}"
  - invocation: view
    execution: "less {file}"
`)
		output, err := runCli(t, "--config", conf, "verbs", "check")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 user verbs are invalid")
		assert.Contains(t, output, "✓ view")
	})
}
