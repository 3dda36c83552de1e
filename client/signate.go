package client

import (
	"context"
	"fmt"

	"github.com/google/shlex"

	"github.com/signate-deploy/signate-deploy/internal/runner"
)

// Signate drives the competition platform's CLI.
type Signate struct {
	Path   string   // resolved executable
	Prefix []string // leading args, e.g. from `python -m signate`
	Dir    string
	Runner runner.Runner
}

// NewSignate builds a client from a configured command line such as
// `python -m signate`, bypassing executable discovery.
func NewSignate(commandLine, dir string, r runner.Runner) (*Signate, error) {
	argv, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signate command %q: %w", commandLine, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("signate command is empty")
	}
	return &Signate{Path: argv[0], Prefix: argv[1:], Dir: dir, Runner: r}, nil
}

// CompetitionList streams `signate competition-list` to the terminal.
func (s *Signate) CompetitionList(ctx context.Context) (int, error) {
	return s.Runner.Passthrough(ctx, s.command("competition-list"))
}

// TaskList streams the tasks of a competition.
func (s *Signate) TaskList(ctx context.Context, competitionKey string) (int, error) {
	return s.Runner.Passthrough(ctx, s.command("task-list", "--competition_key", competitionKey))
}

// FileList streams the downloadable files of a task.
func (s *Signate) FileList(ctx context.Context, taskKey string) (int, error) {
	return s.Runner.Passthrough(ctx, s.command("file-list", "--task_key", taskKey))
}

// Token logs in and makes the CLI write its credential file.
func (s *Signate) Token(ctx context.Context, email, password string) error {
	res, err := s.Runner.Capture(ctx, s.command("token", "--email="+email, "--password="+password))
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		output := res.Stderr
		if len(output) == 0 {
			output = res.Stdout
		}
		return &ToolError{Tool: "signate token", ExitCode: res.ExitCode, Output: string(output)}
	}
	return nil
}

// Argv returns the full command line for args, for logging.
func (s *Signate) Argv(args ...string) []string {
	c := s.command(args...)
	return append([]string{c.Name}, c.Args...)
}

func (s *Signate) command(args ...string) runner.Command {
	argv := append(append([]string{}, s.Prefix...), args...)
	return runner.Command{Name: s.Path, Args: argv, Dir: s.Dir}
}

// ToolError is a non-zero exit from a captured invocation.
type ToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}
