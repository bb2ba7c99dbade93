package runtime

import (
	"context"
	"fmt"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes cmd and returns an error if it cannot start or exits non-zero.
	Run(ctx context.Context, cmd Command) error
}

// Command is a single subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory.
	Dir string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandError reports a failed subprocess. The captured stderr is kept so
// the underlying diagnostic reaches the user.
type CommandError struct {
	Command  Command
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("running %q in %s: %v", e.Command.String(), e.Command.Dir, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
