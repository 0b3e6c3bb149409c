package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"verbtree/internal/errors"
	"verbtree/internal/log"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// VerbConf is one verb declaration of the config file.
type VerbConf struct {
	Invocation  string   `yaml:"invocation,omitempty"`  // Typed form, e.g. "edit {file}"
	Execution   string   `yaml:"execution"`             // ":internal[!] [arg]" or a shell template
	FromShell   bool     `yaml:"from_shell,omitempty"`  // Hand the command to the parent shell and quit
	Key         string   `yaml:"key,omitempty"`         // Single key chord, e.g. "ctrl-e"
	Keys        []string `yaml:"keys,omitempty"`        // Additional key chords
	Shortcut    string   `yaml:"shortcut,omitempty"`    // Single shortcut
	Shortcuts   []string `yaml:"shortcuts,omitempty"`   // Additional shortcuts
	ApplyTo     string   `yaml:"apply_to,omitempty"`    // file, directory or any
	Description string   `yaml:"description,omitempty"` // Shown in help and verb lists
}

// Config represents the application configuration structure.
// It defines user verbs, browser settings and the theme.
type Config struct {
	Verbs    []VerbConf `yaml:"verbs"`
	Settings struct {
		ShowHidden bool   `yaml:"show_hidden"` // Show dot files in the browser
		LogLevel   string `yaml:"log_level"`   // debug, info, warn or error
		LogFile    string `yaml:"log_file"`    // Also write logs to this file
		JSONLogs   bool   `yaml:"json_logs"`   // Log as JSON instead of text
	} `yaml:"settings"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// DefaultPath returns ~/.config/verbtree/conf.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "verbtree", "conf.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	cfg.Verbs = tempCfg.Verbs
	cfg.Settings.ShowHidden = tempCfg.Settings.ShowHidden
	cfg.Settings.JSONLogs = tempCfg.Settings.JSONLogs
	cfg.Settings.LogFile = tempCfg.Settings.LogFile
	if tempCfg.Settings.LogLevel != "" {
		cfg.Settings.LogLevel = tempCfg.Settings.LogLevel
	}
	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}
	overrideColor(&cfg.Theme.Primary, tempCfg.Theme.Primary)
	overrideColor(&cfg.Theme.Success, tempCfg.Theme.Success)
	overrideColor(&cfg.Theme.Warning, tempCfg.Theme.Warning)
	overrideColor(&cfg.Theme.Error, tempCfg.Theme.Error)
	overrideColor(&cfg.Theme.Info, tempCfg.Theme.Info)
	overrideColor(&cfg.Theme.Emphasis, tempCfg.Theme.Emphasis)
	overrideColor(&cfg.Theme.Border, tempCfg.Theme.Border)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func overrideColor(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// defaultConfig returns the default configuration: no user verbs, info logs.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Verbs = []VerbConf{}
	cfg.Settings.LogLevel = "info"
	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the settings. Verb declarations are not checked here:
// an invalid verb is skipped when the registry is built, it does not make
// the whole file unusable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if _, err := logrus.ParseLevel(c.Settings.LogLevel); err != nil {
		return errors.NewConfigError("invalid log level", "settings.log_level", errors.InvalidConfig, err)
	}

	if c.Theme.Name != "" && !isTheme(c.Theme.Name) {
		return errors.NewConfigError("unknown theme "+c.Theme.Name, "theme.name", errors.InvalidConfig, nil)
	}

	for i, vc := range c.Verbs {
		if strings.TrimSpace(vc.Execution) == "" {
			return errors.NewConfigError(fmt.Sprintf("verb %d has no execution", i), "verbs", errors.InvalidConfig, nil)
		}
	}

	return nil
}

// Build turns the declaration into a verb.
func (vc VerbConf) Build() (*verb.Verb, error) {
	subject := vc.Invocation
	if subject == "" {
		subject = vc.Execution
	}

	var b *verb.Builder
	internal, isInternal, err := verb.ParseInternalExecution(strings.TrimSpace(vc.Execution))
	switch {
	case err != nil:
		return nil, errors.NewVerbError("invalid execution", subject, errors.InvalidVerb, err)
	case isInternal:
		if vc.FromShell {
			return nil, errors.InvalidVerbf(subject, "from_shell only applies to external commands")
		}
		b = verb.New(vc.Invocation, internal)
	default:
		mode := verb.StayInApp
		if vc.FromShell {
			mode = verb.LeaveToParentShell
		}
		b = verb.NewExternal(vc.Invocation, vc.Execution, mode)
	}

	for _, k := range nonEmpty(vc.Key, vc.Keys) {
		chord, err := types.ParseKey(k)
		if err != nil {
			return nil, errors.NewVerbError("invalid key", subject, errors.InvalidVerb, err)
		}
		b.WithKey(chord)
	}
	for _, s := range nonEmpty(vc.Shortcut, vc.Shortcuts) {
		b.WithShortcut(s)
	}

	filter, err := verb.ParseFilter(vc.ApplyTo)
	if err != nil {
		return nil, errors.NewVerbError("invalid apply_to", subject, errors.InvalidVerb, err)
	}
	if filter != verb.Any {
		b.WithFilter(filter)
	}

	return b.WithDescription(vc.Description).Build()
}

func nonEmpty(single string, more []string) []string {
	var out []string
	if single != "" {
		out = append(out, single)
	}
	return append(out, more...)
}

// BuildVerbs builds the user verbs in declaration order. Invalid ones are
// logged, skipped and returned as errors.
func (c *Config) BuildVerbs() ([]*verb.Verb, []error) {
	var verbs []*verb.Verb
	var errs []error
	for _, vc := range c.Verbs {
		v, err := vc.Build()
		if err != nil {
			log.LogWithError(err).Warn("skipping invalid verb")
			errs = append(errs, err)
			continue
		}
		verbs = append(verbs, v)
	}
	return verbs, errs
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"border":   "105",
	},
	"light": {
		"primary":  "135",
		"success":  "150",
		"warning":  "222",
		"error":    "210",
		"info":     "117",
		"emphasis": "219",
		"border":   "135",
	},
	"monochrome": {
		"primary":  "245",
		"success":  "252",
		"warning":  "241",
		"error":    "232",
		"info":     "248",
		"emphasis": "255",
		"border":   "245",
	},
}

func isTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
