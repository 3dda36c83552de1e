package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signate-deploy/signate-deploy/internal/config"
	"github.com/signate-deploy/signate-deploy/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <competition-dir> --task-key <task_key> [--file-key NAME:KEY ...]",
	Short: "Create a competition directory from the starter template",
	Long: `Create a local directory for one competition.

The directory gets a signate-config.json (read by the workflows), a starter
train.py and a requirements.txt. The command refuses to touch a directory
that already exists.

Find the task key with 'signate-deploy task-list' and the file keys with
'signate-deploy file-list'.

Examples:
  signate-deploy init my-comp --task-key abc123
  signate-deploy init my-comp --task-key abc123 --file-key train:key1 --file-key test:key2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		taskKey, err := cmd.Flags().GetString("task-key")
		if err != nil {
			return fmt.Errorf("failed to get task-key flag: %w", err)
		}
		tokens, err := cmd.Flags().GetStringArray("file-key")
		if err != nil {
			return fmt.Errorf("failed to get file-key flag: %w", err)
		}

		// everything is validated before the directory is created
		fileKeys, err := config.ParseFileKeys(tokens)
		if err != nil {
			return fail("%v", err)
		}
		cfg := &config.CompetitionConfig{TaskKey: taskKey, FileKeys: fileKeys}
		if err := cfg.Validate(); err != nil {
			return fail("%v", err)
		}

		results, err := scaffold.Competition(workDir, dir, cfg)
		for _, r := range results {
			logger.Debug("scaffolded", zap.String("path", r.Path), zap.Stringer("outcome", r.Outcome))
			printer.Created(filepath.ToSlash(r.Path))
		}
		if errors.Is(err, scaffold.ErrDirExists) {
			return fail("directory '%s' already exists.", dir)
		}
		if err != nil {
			return err
		}

		configPath := filepath.ToSlash(config.Path(dir))
		trainPath := filepath.ToSlash(filepath.Join(dir, "train.py"))

		printer.Blank()
		printer.Success("Created '%s/'.", dir)
		printer.NextSteps("Next steps:",
			fmt.Sprintf("Edit %s (set the TARGET column and features)", trainPath),
			fmt.Sprintf("Fill in file_keys in %s if you have not yet", configPath),
			fmt.Sprintf("git add %s/ && git commit && git push", dir),
			fmt.Sprintf("signate-deploy download %s   # check the data download", dir),
			fmt.Sprintf("signate-deploy submit %s --memo 'Baseline v1'", dir),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("task-key", "", "SIGNATE task_key (from the competition URL or task-list)")
	initCmd.Flags().StringArray("file-key", nil, "File key as NAME:KEY, repeatable (e.g. --file-key train:abc123)")
	_ = initCmd.MarkFlagRequired("task-key")
}
