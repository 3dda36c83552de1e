package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signate-deploy/signate-deploy/internal/scaffold"
)

var initRepoCmd = &cobra.Command{
	Use:   "init-repo",
	Short: "Add the GitHub Actions workflows and .gitignore entries",
	Long: `Set up the current repository for signate-deploy.

Creates:
  .github/workflows/signate-submit.yml
  .github/workflows/signate-download.yml
  a signate-deploy section in .gitignore

Existing workflow files are left alone unless --force is given. The .gitignore
section is only appended once.

Example:
  signate-deploy init-repo
  signate-deploy init-repo --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		opts := scaffold.DefaultWorkflowOptions()
		opts.PythonVersion = settings.PythonVersion
		opts.RetentionDays = settings.RetentionDays
		opts.SecretName = settings.SecretName

		results, err := scaffold.InitRepo(workDir, force, opts)
		// report what was done even when a later file failed
		changed := 0
		for _, r := range results {
			path := filepath.ToSlash(r.Path)
			logger.Debug("scaffolded", zap.String("path", path), zap.Stringer("outcome", r.Outcome))
			switch r.Outcome {
			case scaffold.Created:
				changed++
				printer.Created(path)
			case scaffold.Updated:
				changed++
				printer.Updated(path + " (appended)")
			default:
				if path == ".gitignore" {
					printer.Skip(path, "signate-deploy section already present")
				} else {
					printer.Skip(path, "already exists, use --force to overwrite")
				}
			}
		}
		if err != nil {
			return err
		}

		printer.Blank()
		if changed > 0 {
			printer.Success("Set up %d file(s).", changed)
		} else {
			printer.Line("All files already exist.")
		}

		printer.NextSteps("Next steps:",
			"Store your SIGNATE token as a GitHub secret:\n"+
				"     signate-deploy setup-token --set-secret",
			"Create a competition directory:\n"+
				"     signate-deploy init <competition-dir> --task-key <task_key>",
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initRepoCmd)
	initRepoCmd.Flags().BoolP("force", "f", false, "Overwrite existing workflow files")
}
