package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long a cancelled child may take to exit before it is
// killed outright.
const waitDelay = 5 * time.Second

// Command is an argument vector. It is never passed through a shell.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Result is what a captured invocation produced.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner spawns external tools. A non-zero exit status is reported through
// the exit code, not the error; the error means the process never ran.
type Runner interface {
	Passthrough(ctx context.Context, c Command) (int, error)
	Capture(ctx context.Context, c Command) (*Result, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Passthrough lets the child share our stdio and returns its exit code.
func (r *ExecRunner) Passthrough(ctx context.Context, c Command) (int, error) {
	// same process group as us, so the terminal's Ctrl-C reaches the child
	execCmd := exec.CommandContext(ctx, c.Name, c.Args...)
	execCmd.Dir = c.Dir
	execCmd.Stdin = r.Stdin
	execCmd.Stdout = r.Stdout
	execCmd.Stderr = r.Stderr
	execCmd.Cancel = func() error {
		return terminate(execCmd.Process)
	}
	execCmd.WaitDelay = waitDelay

	return exitCode(execCmd.Run())
}

// Capture buffers the child's output instead of streaming it.
func (r *ExecRunner) Capture(ctx context.Context, c Command) (*Result, error) {
	execCmd := exec.CommandContext(ctx, c.Name, c.Args...)
	execCmd.Dir = c.Dir
	execCmd.SysProcAttr = sysProcAttr()
	// the child gets a chance to clean up before exiting
	execCmd.Cancel = func() error {
		return killProcess(execCmd.Process.Pid)
	}
	execCmd.WaitDelay = waitDelay

	var stdoutBuffer bytes.Buffer
	var stderrBuffer bytes.Buffer
	execCmd.Stdout = &stdoutBuffer
	execCmd.Stderr = &stderrBuffer

	code, err := exitCode(execCmd.Run())
	if err != nil {
		return nil, err
	}
	return &Result{
		ExitCode: code,
		Stdout:   stdoutBuffer.Bytes(),
		Stderr:   stderrBuffer.Bytes(),
	}, nil
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 means the child died from a signal
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return signalExitCode(exitErr.ProcessState), nil
	}
	return -1, fmt.Errorf("command execution failed: %w", err)
}
