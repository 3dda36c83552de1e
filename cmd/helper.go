package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/signate-deploy/signate-deploy/client"
	"github.com/signate-deploy/signate-deploy/internal/config"
	"github.com/signate-deploy/signate-deploy/internal/locator"
	"github.com/signate-deploy/signate-deploy/internal/logging"
)

// exitError carries an exit status back to run. Whatever needed saying has
// already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitCode(code int) error {
	return &exitError{code: code}
}

// fail prints a diagnostic and exits 1.
func fail(format string, args ...any) error {
	printer.Error(format, args...)
	return exitCode(1)
}

// local resolves a user-supplied path against -C.
func local(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// resolveSignate finds the signate CLI, fresh on every call.
func resolveSignate() (*client.Signate, error) {
	if settings.SignateCommand != "" {
		s, err := client.NewSignate(settings.SignateCommand, workDir, procRunner)
		if err != nil {
			return nil, fail("%v", err)
		}
		logger.Debug("using configured signate command", zap.Strings("argv", s.Argv()))
		return s, nil
	}

	path, err := locator.Locate("signate", lookupEnv())
	if errors.Is(err, locator.ErrNotFound) {
		return nil, fail("signate CLI not found. Install it with: pip install signate")
	}
	if err != nil {
		return nil, fail("failed to locate signate: %v", err)
	}
	logger.Debug("resolved executable", zap.String("tool", "signate"), zap.String("path", path))
	return &client.Signate{Path: path, Dir: workDir, Runner: procRunner}, nil
}

func newGitHub() (*client.GitHub, error) {
	gh, err := client.NewGitHub(settings.GHCommand, workDir, procRunner)
	if err != nil {
		return nil, fail("%v", err)
	}
	return gh, nil
}

// requireCompetition checks that dir was created by `init`.
func requireCompetition(dir string) error {
	if !config.Exists(local(dir)) {
		printer.Error("%s not found.", config.Path(dir))
		printer.Detail("Create the directory with: signate-deploy init " + dir + " --task-key <task_key>")
		return exitCode(1)
	}
	if _, err := config.LoadCompetition(local(dir)); err != nil {
		printer.Warn("%v; the workflow will probably fail", err)
	}
	return nil
}

// toolFailed reports a failed captured invocation.
func toolFailed(message string, err error) error {
	var toolErr *client.ToolError
	if errors.As(err, &toolErr) {
		logger.Debug("tool failed", zap.String("tool", toolErr.Tool), zap.Int("exit_code", toolErr.ExitCode))
		printer.Error("%s", message)
		printer.Detail(toolErr.Output)
		return exitCode(1)
	}
	return fail("%s %v", message, err)
}

// passthroughResult forwards a pass-through child's exit status verbatim.
func passthroughResult(tool string, code int, err error) error {
	if err != nil {
		return fail("failed to run %s: %v", tool, err)
	}
	logger.Debug("tool exited", zap.String("tool", tool), zap.Int("exit_code", code))
	if code != 0 {
		return exitCode(code)
	}
	return nil
}

func openWorkflowPage(ctx context.Context, gh *client.GitHub, workflowFile string) {
	u, err := gh.OpenWorkflowPage(ctx, workflowFile)
	if err != nil {
		printer.Warn("could not open the workflow page: %v", err)
		return
	}
	printer.Hint("Opened:", u)
}

func debugArgv(msg string, argv []string) {
	logger.Debug(msg, zap.Strings("argv", logging.Redact(argv)))
}
