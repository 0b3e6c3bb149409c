package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"verbtree/internal/config"
	"verbtree/internal/dispatch"
	"verbtree/internal/errors"
	"verbtree/internal/registry"
	"verbtree/internal/shell"
	"verbtree/internal/verb"
	"verbtree/pkg/types"

	"github.com/charmbracelet/glamour"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewVerbsCmd creates the verbs command and its subcommands
func NewVerbsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verbs",
		Short: "Inspect and try verbs",
		Long:  `List the verbs in effect, check the user verbs of the config file, or resolve a verb without opening the browser.`,
	}

	cmd.AddCommand(newVerbsListCmd())
	cmd.AddCommand(newVerbsResolveCmd())
	cmd.AddCommand(newVerbsCheckCmd())

	return cmd
}

// currentRegistry builds the built-in plus user verbs of the loaded config.
func currentRegistry() (*registry.Registry, []error) {
	userVerbs, errs := cfg.BuildVerbs()
	return registry.New(verb.Builtins(), userVerbs), errs
}

func newVerbsListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the verbs in effect",
		Long:  `List built-in and user verbs with their keys and shortcuts. Overridden verbs are not shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _ := currentRegistry()
			verbs := r.Verbs()
			if filter != "" {
				var err error
				if verbs, err = r.Filter(filter); err != nil {
					return err
				}
			}
			if len(verbs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), infoText("No verb matches."))
				return nil
			}

			md := verbTable(r, verbs)
			if f, ok := cmd.OutOrStdout().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				renderer, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(120),
				)
				if err == nil {
					if out, err := renderer.Render(md); err == nil {
						md = out
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only verbs whose name or invocation matches this glob")

	return cmd
}

// verbTable renders verbs as a markdown table.
func verbTable(r *registry.Registry, verbs []*verb.Verb) string {
	var sb strings.Builder
	sb.WriteString("| verb | keys | shortcuts | applies to | execution | origin |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, v := range verbs {
		keys := make([]string, len(v.Keys()))
		for i, k := range v.Keys() {
			keys[i] = k.String()
		}
		origin := "user"
		if r.IsBuiltin(v) {
			origin = "builtin"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			cell(v.String()),
			cell(strings.Join(keys, " ")),
			cell(strings.Join(v.Shortcuts(), " ")),
			v.Filter(),
			cell("`"+v.Execution().String()+"`"),
			origin,
		)
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// cliState applies nothing: internal actions need the browser.
type cliState struct {
	out io.Writer
}

func (s cliState) ApplyInternal(req dispatch.InternalRequest) (dispatch.Outcome, error) {
	fmt.Fprintln(s.out, warningText(req.String()+" only runs inside the browser"))
	return dispatch.Handled, nil
}

func newVerbsResolveCmd() *cobra.Command {
	var (
		path       string
		otherPanel string
		keyName    string
		exec       bool
		argv       bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [text]",
		Short: "Show what a typed verb or a key would do",
		Long: `Resolve typed text (or a key with --key) against the verbs in effect, for
the selection given with --path, and print the resulting request.

With --exec the request is dispatched: external commands are run, or
handed to the parent shell through --outcmd.`,
		Example: `  verbtree verbs resolve "mv ../done/" --path notes.txt
  verbtree verbs resolve --key alt-enter --path ~/src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" && keyName == "" {
				return fmt.Errorf("nothing to resolve: give some text or --key")
			}

			sel := types.Selection{}
			if path != "" {
				var err error
				if sel, err = types.NewSelection(path); err != nil {
					return err
				}
			}
			if otherPanel != "" {
				sel = sel.WithOtherPanel(otherPanel)
			}

			r, _ := currentRegistry()
			out := cmd.OutOrStdout()
			runner := shell.NewRunner(outCmd)
			runner.Stdout = out
			dispatcher := dispatch.NewDispatcher(cliState{out: out}, runner)
			engine := dispatch.NewEngine(registry.NewHolder(r), dispatcher)

			var (
				req dispatch.Request
				ok  bool
				err error
			)
			label := text
			if keyName != "" {
				label = keyName
				chord, perr := types.ParseKey(keyName)
				if perr != nil {
					return perr
				}
				req, ok, err = engine.ResolveKey(chord, sel)
			} else {
				req, ok, err = engine.ResolveInput(text, sel)
			}
			if !ok {
				return fmt.Errorf("no verb applies to %q for a %s selection", label, sel.Type)
			}
			if err != nil {
				return err
			}

			printRequest(out, req, argv)

			if !exec {
				return nil
			}
			outcome, err := dispatcher.Dispatch(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, successText("outcome: "+outcome.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "selected file or directory")
	cmd.Flags().StringVar(&otherPanel, "other-panel", "", "directory shown in the other panel")
	cmd.Flags().StringVarP(&keyName, "key", "k", "", "resolve a key chord instead of text, e.g. ctrl-e")
	cmd.Flags().BoolVar(&exec, "exec", false, "dispatch the request")
	cmd.Flags().BoolVar(&argv, "argv", false, "also print the shell words of external commands")

	return cmd
}

func printRequest(out io.Writer, req dispatch.Request, argv bool) {
	switch req := req.(type) {
	case dispatch.InternalRequest:
		fmt.Fprintf(out, "%s %s\n", headerText("internal"), req)
	case dispatch.ExternalRequest:
		fmt.Fprintf(out, "%s %s\n", headerText("external ("+req.Mode.String()+")"), req.Command)
		if !argv {
			return
		}
		words, err := shellquote.Split(req.Command)
		if err != nil {
			fmt.Fprintln(out, warningText("cannot split: "+err.Error()))
			return
		}
		for i, w := range words {
			fmt.Fprintf(out, "  [%d] %s\n", i, w)
		}
	}
}

func newVerbsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the user verbs of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// load again: the root command fell back to defaults on error
			c, err := config.LoadConfigFile(cfgPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, infoText("Config: "+cfgPath))

			verbs, errs := c.BuildVerbs()
			for _, err := range errs {
				fmt.Fprintln(out, errorText("  ✗ "+err.Error()))
			}
			r := registry.New(verb.Builtins(), verbs)
			for _, v := range verbs {
				fmt.Fprintln(out, successText("  ✓ "+v.String()))
				for _, k := range v.Keys() {
					if r.ByKey(k, types.File) != v && r.ByKey(k, types.Directory) != v {
						fmt.Fprintln(out, warningText("    "+k.String()+" is taken by a later verb"))
					}
				}
			}

			if len(errs) > 0 {
				return errors.Newf("%d of %d user verbs are invalid", len(errs), len(c.Verbs))
			}
			fmt.Fprintln(out, successText(fmt.Sprintf("%d user verbs OK", len(verbs))))
			return nil
		},
	}
}
