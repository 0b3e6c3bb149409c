package main

import (
	"fmt"
	"io"
	"os"

	"verbtree/internal/config"
	"verbtree/internal/log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile string
	outCmd  string
	debug   bool

	cfg     *config.Config
	cfgPath string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verbtree",
		Short: "A file browser driven by verbs",
		Long: `verbtree is a terminal file browser where every action is a verb.

Verbs are typed ("mv ../done/") or bound to keys (alt-enter), and user
verbs declared in the config file can override the built-in ones.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/verbtree/conf.yaml)")
	rootCmd.PersistentFlags().StringVar(&outCmd, "outcmd", "", "file receiving the command to run in the parent shell")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewVerbsCmd())

	return rootCmd
}

// loadConfig reads the config file. A broken file is reported and the
// defaults are used, so the browser stays usable.
func loadConfig(stderr io.Writer) error {
	cfgPath = cfgFile
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("cannot locate config: %w", err)
		}
	}

	var err error
	cfg, err = config.LoadConfigFile(cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, warningText(fmt.Sprintf("Warning: %v", err)))
		fmt.Fprintln(stderr, infoText("Using default settings."))
		cfg = config.New()
	}
	applyTheme(cfg)
	configureLogging(stderr)
	return nil
}

// configureLogging sets the package logger from the settings section.
func configureLogging(out io.Writer) {
	level, err := logrus.ParseLevel(cfg.Settings.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debug {
		level = logrus.DebugLevel
	}

	opts := []log.Option{log.WithOutput(out), log.WithLevel(level)}
	if cfg.Settings.JSONLogs {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Settings.LogFile != "" {
		opts = append(opts, log.WithFile(cfg.Settings.LogFile))
	}
	log.Configure(opts...)
	log.SetDebug(level == logrus.DebugLevel)
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err.Error()))
		os.Exit(1)
	}
}
