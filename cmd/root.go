/*
Copyright © 2026 The signate-deploy Authors
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signate-deploy/signate-deploy/internal/config"
	"github.com/signate-deploy/signate-deploy/internal/locator"
	"github.com/signate-deploy/signate-deploy/internal/logging"
	"github.com/signate-deploy/signate-deploy/internal/runner"
	"github.com/signate-deploy/signate-deploy/ui"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	workDir string
	verbose bool

	settings *config.Settings
	logger   = zap.NewNop()
	printer  = &ui.Printer{Out: os.Stdout, Err: os.Stderr}

	// swapped out in tests
	procRunner runner.Runner = runner.NewExecRunner()
	lookupEnv                = locator.DefaultEnv
	prompter   ui.Prompter   = &ui.TerminalPrompter{}
	isTerminal               = ui.IsTerminal
)

var rootCmd = &cobra.Command{
	Use:   "signate-deploy",
	Short: "Automate SIGNATE competitions through GitHub Actions",
	Long: `signate-deploy - download, train and submit SIGNATE competitions on GitHub Actions

It sets up workflow files in your repository, scaffolds one directory per
competition and triggers the remote runs with the gh CLI. Your code never runs
locally; this tool only starts the jobs and reports how starting them went.

Quick Start:
  1. Setup workflows:   signate-deploy init-repo
  2. Store the token:   signate-deploy setup-token --set-secret
  3. New competition:   signate-deploy init my-comp --task-key <task_key>
  4. Fetch the data:    signate-deploy download my-comp
  5. Submit:            signate-deploy submit my-comp --memo "baseline"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		printer = &ui.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}

		info, err := os.Stat(workDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("working directory %q does not exist", workDir)
		}

		settings, err = config.LoadSettings(workDir)
		if err != nil {
			return err
		}

		level := settings.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(logging.Config{Level: level, Format: settings.LogFormat}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger.Debug("settings loaded", zap.String("work_dir", workDir), zap.Any("settings", settings))
		return nil
	},
}

// Execute runs the CLI and exits with the resulting status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	(&ui.Printer{Out: rootCmd.OutOrStdout(), Err: rootCmd.ErrOrStderr()}).Error("%v", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", ".", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
}
