// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"

	"github.com/signate-deploy/signate-deploy/internal/runner"
)

// Call records one invocation.
type Call struct {
	Mode    string // "passthrough" or "capture"
	Command runner.Command
}

// Fake answers every call with the next queued result. With nothing queued
// it reports success with empty output.
type Fake struct {
	Calls   []Call
	Results []*runner.Result
	Err     error
}

func (f *Fake) Passthrough(ctx context.Context, c runner.Command) (int, error) {
	f.Calls = append(f.Calls, Call{Mode: "passthrough", Command: c})
	if f.Err != nil {
		return -1, f.Err
	}
	return f.next().ExitCode, nil
}

func (f *Fake) Capture(ctx context.Context, c runner.Command) (*runner.Result, error) {
	f.Calls = append(f.Calls, Call{Mode: "capture", Command: c})
	if f.Err != nil {
		return nil, f.Err
	}
	return f.next(), nil
}

// Queue appends a result for a later call.
func (f *Fake) Queue(exitCode int, stdout, stderr string) {
	f.Results = append(f.Results, &runner.Result{
		ExitCode: exitCode,
		Stdout:   []byte(stdout),
		Stderr:   []byte(stderr),
	})
}

// Argv renders call i as name followed by its arguments.
func (f *Fake) Argv(i int) []string {
	if i >= len(f.Calls) {
		panic(fmt.Sprintf("runnertest: only %d calls recorded", len(f.Calls)))
	}
	c := f.Calls[i].Command
	return append([]string{c.Name}, c.Args...)
}

func (f *Fake) next() *runner.Result {
	if len(f.Results) == 0 {
		return &runner.Result{}
	}
	res := f.Results[0]
	f.Results = f.Results[1:]
	return res
}
