package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"verbtree/internal/config"
	"verbtree/internal/log"
	"verbtree/internal/registry"
	"verbtree/internal/shell"
	"verbtree/internal/tui"
	"verbtree/internal/tui/messages"
	"verbtree/internal/verb"
	"verbtree/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the browse command
func NewBrowseCmd() *cobra.Command {
	var showHidden bool

	cmd := &cobra.Command{
		Use:   "browse [directory]",
		Short: "Browse a directory",
		Long: `Open the file browser on a directory (the current one by default).

Type to invoke a verb, press a bound key, or f1 for the key list. Verbs
leaving to the parent shell are printed on exit, or written to the file
given with --outcmd for a shell function to evaluate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the browser draws on stderr when stdout is captured
			var output *os.File
			switch {
			case isatty.IsTerminal(os.Stdout.Fd()):
				output = os.Stdout
			case isatty.IsTerminal(os.Stderr.Fd()):
				output = os.Stderr
			default:
				return fmt.Errorf("browse needs a terminal")
			}

			dir, err := browseDir(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("hidden") {
				cfg.Settings.ShowHidden = showHidden
			}
			return runBrowser(dir, output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "show hidden files")

	return cmd
}

func browseDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("error accessing %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return abs, nil
}

func runBrowser(dir string, output *os.File, stdout io.Writer) error {
	// log lines would tear the screen, only the log file gets them
	configureLogging(io.Discard)

	userVerbs, verbErrs := cfg.BuildVerbs()
	holder := registry.NewHolder(registry.New(verb.Builtins(), userVerbs))
	runner := shell.NewRunner(outCmd)

	model, err := tui.New(tui.Options{
		Dir:        dir,
		Registry:   holder,
		Runner:     runner,
		Colors:     themeColors(cfg),
		ShowHidden: cfg.Settings.ShowHidden,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(output))

	if len(verbErrs) > 0 {
		go p.Send(messages.ErrorMsg{Err: fmt.Errorf("%d invalid verbs skipped: %v", len(verbErrs), verbErrs[0])})
	}

	if w, err := watch.New(cfgPath); err != nil {
		log.LogWithError(err).Warn("config changes will not be picked up")
	} else if err := w.Start(); err != nil {
		log.LogWithError(err).Warn("config changes will not be picked up")
	} else {
		defer w.Stop()
		go reloadVerbs(w, holder, p)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}

	if line := model.LeaveCommand(); line != "" {
		runner.Stdout = stdout
		if err := runner.WriteOutCmd(line); err != nil {
			return err
		}
	}
	if out := model.Output(); out != "" {
		fmt.Fprintln(stdout, out)
	}
	return nil
}

// reloadVerbs rebuilds the registry on every config change and publishes
// it. Dispatches already running keep the registry they started with.
func reloadVerbs(w *watch.ConfigWatcher, holder *registry.Holder, p *tea.Program) {
	for change := range w.Changes() {
		logger := log.LogWithFields(log.F("path", change.Path), log.F("removed", change.Removed))

		c, err := config.LoadConfigFile(change.Path)
		if err != nil {
			logger.Warn("config reload failed, keeping the current verbs")
			p.Send(messages.ErrorMsg{Err: err})
			continue
		}
		userVerbs, errs := c.BuildVerbs()
		r := registry.New(verb.Builtins(), userVerbs)
		holder.Swap(r)

		logger.With(log.F("verbs", r.Len()), log.F("invalid", len(errs))).Info("verbs reloaded")
		p.Send(messages.RegistryReloadedMsg{Registry: r, Errors: errs})
	}
}
