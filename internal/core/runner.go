package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// RunResult is the outcome of an external command that started.
type RunResult struct {
	ExitCode int
	Output   string // combined stdout and stderr, empty when inherited
}

// Runner runs external commands. It returns an error only when the
// command could not be started or waited for; a non-zero exit is
// reported through RunResult.ExitCode.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (RunResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Env is the child environment. Nil means the process environment.
	Env []string
	// Inherit streams child output to Stdout and Stderr instead of capturing it.
	Inherit bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewExecRunner creates a runner with the given environment. Output is
// inherited in debug mode and captured otherwise.
func NewExecRunner(env []string) *ExecRunner {
	return &ExecRunner{
		Env:     env,
		Inherit: IsDebug(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = r.Env

	var buf bytes.Buffer
	if r.Inherit {
		cmd.Stdin = os.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	} else {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	}

	err := cmd.Run()
	res := RunResult{Output: buf.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		res.ExitCode = -1
		return res, err
	}
}

// FormatArgs builds the display string for a command line.
func FormatArgs(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
