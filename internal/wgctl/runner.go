// Package wgctl shells out to the wg and wg-quick tools for runtime status
// and interface control. Nothing in here touches config files; the parser and
// serializer stay process-free and unit-testable.
package wgctl

import (
	"errors"
	"os/exec"
	"strings"
)

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	// Output runs the command and returns its stdout. A non-zero exit
	// status is an error carrying the captured stderr text.
	Output(name string, args ...string) ([]byte, error)
	// OutputWithInput is Output with data piped to the command's stdin.
	OutputWithInput(input string, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return out, wrapCommandError(name, err)
	}
	return out, nil
}

func (execRunner) OutputWithInput(input string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.Output()
	if err != nil {
		return out, wrapCommandError(name, err)
	}
	return out, nil
}

// wrapCommandError attaches the stderr that (*exec.Cmd).Output captured on a
// non-zero exit.
func wrapCommandError(name string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: name, Stderr: string(exitErr.Stderr), Err: err}
	}
	return &CommandError{Command: name, Err: err}
}

// CommandError reports a failed external command with its captured stderr.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return "command " + e.Command + " failed: " + msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
