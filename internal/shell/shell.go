// Package shell runs the external commands (git, python, pip) that scaffold
// steps depend on.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/unqdlphn/web-app-starter/internal/logger"
)

// Runner executes external commands for scaffold steps.
// Implementations must be safe for concurrent use.
type Runner interface {
	// Run executes name with args in dir and returns the combined output.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)

	// LookPath resolves name to an executable path.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands on the local host via os/exec.
// With DryRun set it prints the command line to Out instead of executing
// it, so the plan stays complete even when logging is quiet.
type ExecRunner struct {
	DryRun bool
	Log    logger.Logger
	Out    io.Writer // where dry-run command lines are written
}

// NewExecRunner creates an ExecRunner. A nil log falls back to
// logger.Default and a nil out to os.Stdout.
func NewExecRunner(dryRun bool, log logger.Logger, out io.Writer) *ExecRunner {
	if log == nil {
		log = logger.Default
	}
	if out == nil {
		out = os.Stdout
	}
	return &ExecRunner{DryRun: dryRun, Log: log, Out: out}
}

// Run executes the command and returns its combined output. Failures include
// the command line and trimmed output in the error.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	line := CommandLine(name, args)
	if r.DryRun {
		fmt.Fprintf(r.Out, "  [dry-run] would run: %s\n", line)
		return "", nil
	}
	r.Log.Debug("run: %s", line)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return string(output), fmt.Errorf("%s: %w", line, err)
		}
		return string(output), fmt.Errorf("%s: %w: %s", line, err, msg)
	}

	return string(output), nil
}

// LookPath resolves name on PATH. In dry-run mode every name resolves so a
// plan can be printed on machines missing git or python.
func (r *ExecRunner) LookPath(name string) (string, error) {
	if r.DryRun {
		return name, nil
	}
	return exec.LookPath(name)
}

// CommandLine formats a command and its arguments for logs and errors.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
