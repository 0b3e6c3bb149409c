package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"verbtree/internal/config"
	"verbtree/internal/errors"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "conf-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
verbs:
  - invocation: edit
    key: ctrl-e
    shortcut: e
    execution: "$EDITOR {file}"
    apply_to: file
  - invocation: "go {path:path-from-directory}"
    execution: ":focus {path}"
  - key: alt-g
    execution: "git status"
    from_shell: true
    description: show git status
  - invocation: "touch {name:path-from-directory}"
    execution: "touch {name}"
    shortcuts: [t, tc]
settings:
  show_hidden: true
  log_level: debug
theme:
  name: dark
  border: "99"
`
	invalidSyntaxYAML = `
verbs:
  - invocation: "edit
    execution: vi {file}
`
	invalidValueYAML = `
settings:
  log_level: loud
`
	mixedVerbsYAML = `
verbs:
  - invocation: "copy {newpath"
    execution: "cp {file} {newpath}"
  - execution: ":quit"
  - invocation: view
    execution: "less {file}"
  - invocation: bad_key
    key: hyper-x
    execution: "echo"
  - invocation: nothing
    execution: ":does_not_exist"
  - invocation: dup
    keys: [ctrl-d, ctrl-d]
    execution: "echo dup"
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Len(t, cfg.Verbs, 4)
		assert.Equal(t, "edit", cfg.Verbs[0].Invocation)
		assert.Equal(t, "ctrl-e", cfg.Verbs[0].Key)
		assert.True(t, cfg.Verbs[2].FromShell)
		assert.Equal(t, []string{"t", "tc"}, cfg.Verbs[3].Shortcuts)
		assert.True(t, cfg.Settings.ShowHidden)
		assert.Equal(t, "debug", cfg.Settings.LogLevel)
		assert.Equal(t, "dark", cfg.Theme.Name)
		assert.Equal(t, "99", cfg.Theme.Border)
		assert.Equal(t, config.GetTheme("dark")["primary"], cfg.Theme.Primary)
	})

	t.Run("file not found returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Verbs)
		assert.Equal(t, "info", cfg.Settings.LogLevel)
		assert.Equal(t, "default", cfg.Theme.Name)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidValueYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))

		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "settings.log_level", cfgErr.Param())
	})
}

func TestBuildVerbs(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
	require.NoError(t, err)

	verbs, errs := cfg.BuildVerbs()
	require.Empty(t, errs)
	require.Len(t, verbs, 4)

	edit := verbs[0]
	assert.Equal(t, "edit", edit.Name())
	assert.Equal(t, []types.KeyChord{types.CtrlKey('e')}, edit.Keys())
	assert.Equal(t, []string{"e"}, edit.Shortcuts())
	assert.Equal(t, verb.FileOnly, edit.Filter())
	assert.Equal(t, verb.StayInApp, edit.Execution().(verb.ExternalExecution).Mode)

	focus := verbs[1]
	assert.True(t, focus.IsInternal())
	exec := focus.Execution().(verb.InternalExecution)
	assert.Equal(t, verb.Focus, exec.Action)
	assert.Equal(t, "{path}", exec.Arg)

	status := verbs[2]
	assert.Equal(t, "git", status.Name())
	assert.Equal(t, "show git status", status.Description().Text)
	assert.Equal(t, verb.LeaveToParentShell, status.Execution().(verb.ExternalExecution).Mode)
	assert.Equal(t, []types.KeyChord{types.AltKey('g')}, status.Keys())

	assert.Equal(t, []string{"t", "tc"}, verbs[3].Shortcuts())
}

func TestBuildVerbsSkipsInvalid(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestYAML(t, mixedVerbsYAML))
	require.NoError(t, err)

	verbs, errs := cfg.BuildVerbs()
	require.Len(t, verbs, 1)
	assert.Equal(t, "view", verbs[0].Name())

	require.Len(t, errs, 5)
	assert.True(t, errors.IsInvalidVerb(errs[0]), "malformed pattern")
	assert.True(t, errors.IsInvalidVerb(errs[1]), "unreachable verb")
	assert.True(t, errors.IsInvalidVerb(errs[2]), "unknown key")
	assert.True(t, errors.IsInvalidVerb(errs[3]), "unknown internal")
	assert.True(t, errors.IsDuplicateBinding(errs[4]), "duplicate key")
}

func TestVerbConfFromShellInternal(t *testing.T) {
	_, err := config.VerbConf{Invocation: "bye", Execution: ":quit", FromShell: true}.Build()
	assert.True(t, errors.IsInvalidVerb(err))
}

func TestSaveConfig(t *testing.T) {
	cfg := config.New()
	cfg.Verbs = append(cfg.Verbs, config.VerbConf{
		Invocation: "edit",
		Execution:  "vi {file}",
		Key:        "ctrl-e",
		ApplyTo:    "file",
	})
	cfg.Settings.ShowHidden = true

	path := filepath.Join(t.TempDir(), "nested", "conf.yaml")
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Verbs, loaded.Verbs)
	assert.True(t, loaded.Settings.ShowHidden)
}

func TestValidate(t *testing.T) {
	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())

	cfg := config.New()
	require.NoError(t, cfg.Validate())

	cfg.Theme.Name = "neon"
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Verbs = []config.VerbConf{{Invocation: "noop"}}
	assert.True(t, errors.IsInvalidConfig(cfg.Validate()))
}

func TestDefaultPath(t *testing.T) {
	path, err := config.DefaultPath()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.True(t, strings.HasSuffix(path, filepath.Join(".config", "verbtree", "conf.yaml")), path)
}
