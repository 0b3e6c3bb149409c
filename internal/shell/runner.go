// Package shell runs resolved external commands. Commands that must affect
// the launching shell (cd and the like) are written out for a shell
// function to evaluate after the browser exits.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"verbtree/internal/dispatch"
	"verbtree/internal/errors"
	"verbtree/internal/log"
	"verbtree/internal/verb"
)

const waitDelay = 500 * time.Millisecond

// Runner is the execution collaborator of the dispatcher.
type Runner struct {
	// Shell interprets command lines; "sh" when empty.
	Shell string
	// OutCmd receives commands for the parent shell. Empty means Stdout.
	OutCmd string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a runner attached to the process standard streams.
func NewRunner(outcmd string) *Runner {
	return &Runner{
		Shell:  "sh",
		OutCmd: outcmd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Command prepares a command line for the shell. The line was quoted when
// it was resolved, so it is passed as a single -c argument.
func (r *Runner) Command(ctx context.Context, line string) *exec.Cmd {
	sh := r.Shell
	if sh == "" {
		sh = "sh"
	}
	cmd := exec.CommandContext(ctx, sh, "-c", line)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	// children left behind by a killed shell must not hold Wait forever
	cmd.WaitDelay = waitDelay
	return cmd
}

// Execute runs a StayInApp command to completion, or hands a
// LeaveToParentShell command over through WriteOutCmd.
func (r *Runner) Execute(ctx context.Context, req dispatch.ExternalRequest) error {
	logger := log.LogWithFields(log.F("request_id", req.ID.String()))
	if req.Mode == verb.LeaveToParentShell {
		logger.Debug("handing command to parent shell")
		return r.WriteOutCmd(req.Command)
	}

	if err := r.Command(ctx, req.Command).Run(); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "command cancelled")
		}
		return errors.Wrapf(err, "command %q failed", req.Command)
	}
	logger.Debug("command completed")
	return nil
}

// WriteOutCmd writes the command for the launching shell to evaluate.
func (r *Runner) WriteOutCmd(line string) error {
	if r.OutCmd == "" {
		out := r.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprintln(out, line)
		return err
	}
	if err := os.WriteFile(r.OutCmd, []byte(line+"\n"), 0600); err != nil {
		return errors.NewFileError("cannot write command file", r.OutCmd, errors.FileAccessDenied, err)
	}
	return nil
}
