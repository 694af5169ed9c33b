package installer

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external processes. The exec-backed implementation is used
// in production; tests substitute a fake that records invocations and returns
// configured results, so no real package manager ever runs under test.
type Runner interface {
	// Run spawns the process synchronously with inherited standard streams,
	// so the user sees native tool output directly. A non-zero exit or spawn
	// failure is returned as a *CommandError.
	Run(argv []string) error

	// LookPath reports where an executable resolves on the search path.
	LookPath(name string) (string, error)
}

// CommandError reports a failed external command, carrying the argv it was
// invoked with.
type CommandError struct {
	Argv []string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands through os/exec with inherited stdio.
type ExecRunner struct{}

func (ExecRunner) Run(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{Argv: argv, Err: err}
	}
	return nil
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
