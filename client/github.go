package client

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/browser"

	"github.com/signate-deploy/signate-deploy/internal/runner"
)

// Input is one `-f key=value` workflow_dispatch input.
type Input struct {
	Key   string
	Value string
}

// GitHub drives the `gh` CLI.
type GitHub struct {
	Command []string // gh plus any fixed leading flags
	Dir     string
	Runner  runner.Runner
	OpenURL func(string) error
}

// NewGitHub splits a configured command line such as `gh` or
// `gh --repo owner/name` into an argv prefix.
func NewGitHub(commandLine, dir string, r runner.Runner) (*GitHub, error) {
	argv, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gh command %q: %w", commandLine, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("gh command is empty")
	}
	return &GitHub{Command: argv, Dir: dir, Runner: r, OpenURL: browser.OpenURL}, nil
}

// RunWorkflow dispatches a workflow_dispatch run of workflowFile.
func (g *GitHub) RunWorkflow(ctx context.Context, workflowFile string, inputs ...Input) error {
	args := []string{"workflow", "run", workflowFile}
	for _, in := range inputs {
		args = append(args, "-f", in.Key+"="+in.Value)
	}
	_, err := g.capture(ctx, "gh workflow run", args...)
	return err
}

// SetSecret stores value as a repository secret.
func (g *GitHub) SetSecret(ctx context.Context, name, value string) error {
	_, err := g.capture(ctx, "gh secret set", "secret", "set", name, "--body", value)
	return err
}

// RepoURL asks gh for the current repository's web URL.
func (g *GitHub) RepoURL(ctx context.Context) (string, error) {
	out, err := g.capture(ctx, "gh repo view", "repo", "view", "--json", "url", "--jq", ".url")
	if err != nil {
		return "", err
	}
	repoURL := strings.TrimSpace(out)
	if repoURL == "" {
		return "", fmt.Errorf("gh repo view returned no url")
	}
	return repoURL, nil
}

// OpenWorkflowPage opens the Actions page of workflowFile in the browser.
func (g *GitHub) OpenWorkflowPage(ctx context.Context, workflowFile string) (string, error) {
	repoURL, err := g.RepoURL(ctx)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("invalid repository url %q: %w", repoURL, err)
	}
	u.Path = path.Join(u.Path, "actions", "workflows", workflowFile)

	open := g.OpenURL
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(u.String()); err != nil {
		return u.String(), err
	}
	return u.String(), nil
}

// Argv returns the full command line for args, for logging.
func (g *GitHub) Argv(args ...string) []string {
	return append(append([]string{}, g.Command...), args...)
}

func (g *GitHub) capture(ctx context.Context, what string, args ...string) (string, error) {
	argv := g.Argv(args...)
	res, err := g.Runner.Capture(ctx, runner.Command{Name: argv[0], Args: argv[1:], Dir: g.Dir})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ToolError{Tool: what, ExitCode: res.ExitCode, Output: string(res.Stderr)}
	}
	return string(res.Stdout), nil
}
