package nat

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Executer runs a host command to completion
type Executer interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecuterFunc adapts a function to the Executer interface
type ExecuterFunc func(ctx context.Context, name string, args ...string) error

// Run implements Executer
func (e ExecuterFunc) Run(ctx context.Context, name string, args ...string) error {
	return e(ctx, name, args...)
}

// CommandError is returned when a command could not run or exited with a non zero code
type CommandError struct {
	Command Command
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return errors.Wrapf(e.Err, "command '%s' failed", e.Command).Error()
}

// Cause implements the pkg/errors causer
func (e *CommandError) Cause() error { return e.Err }

func (e *CommandError) Unwrap() error { return e.Err }

// run executes the command with stdin and stdout attached to the terminal so
// interactive tools (a package manager asking for confirmation, sudo asking
// for a password) keep working. stderr is captured only, it is reported once
// with the error.
func run(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Command: Command{Name: name, Args: args},
			Output:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return nil
}
