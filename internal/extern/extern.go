// Package extern runs the external binaries the pipeline delegates
// to: the download client, the archive tool and the mmseqs toolkit.
package extern

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external command and blocks until it exits.
// Implementations report a *ProcessError when the command cannot be
// launched or exits nonzero.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ProcessError is a failed external command: it either could not be
// started or exited nonzero.
type ProcessError struct {
	Name string
	Args []string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// CommandRunner runs commands with os/exec, streaming the child's
// stdout line by line to Stdout (the process stdout when nil) so
// download progress shows up as it happens.
type CommandRunner struct {
	Stdout io.Writer
}

// Run executes name with args, forwarding stdout and stderr. The
// command is killed if ctx is cancelled.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) error {
	out := r.Stdout
	if out == nil {
		out = os.Stdout
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &ProcessError{Name: name, Args: args, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &ProcessError{Name: name, Args: args, Err: err}
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		return &ProcessError{Name: name, Args: args, Err: err}
	}
	return nil
}

// Lookup checks that each named binary is on PATH, returning the
// first that is not.
func Lookup(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("required binary %q not found in PATH: %w", name, err)
		}
	}
	return nil
}
