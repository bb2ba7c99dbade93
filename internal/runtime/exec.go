package runtime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive the subprocess output as it is produced.
	// Nil discards stdout; stderr is always captured for error reporting.
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts cmd in cmd.Dir and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		return &CommandError{Command: cmd, ExitCode: -1, Err: err}
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir

	stdout := r.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	var stderrBuf bytes.Buffer
	c.Stdout = stdout
	if r.Stderr != nil {
		c.Stderr = io.MultiWriter(r.Stderr, &stderrBuf)
	} else {
		c.Stderr = &stderrBuf
	}

	if err := c.Run(); err != nil {
		cerr := &CommandError{Command: cmd, ExitCode: -1, Stderr: stderrBuf.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return cerr
	}
	return nil
}
