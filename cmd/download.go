package cmd

import (
	"github.com/spf13/cobra"

	"github.com/signate-deploy/signate-deploy/client"
	"github.com/signate-deploy/signate-deploy/internal/scaffold"
)

var downloadCmd = &cobra.Command{
	Use:   "download <competition-dir>",
	Short: "Download the competition data on GitHub Actions",
	Long: `Trigger the signate-download.yml workflow for a competition directory.

The workflow reads <competition-dir>/signate-config.json, downloads every file
key and uploads the data as a build artifact.

Example:
  signate-deploy download my-comp
  signate-deploy download my-comp --web`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := requireCompetition(dir); err != nil {
			return err
		}
		gh, err := newGitHub()
		if err != nil {
			return err
		}

		printer.Step("Triggering download workflow for '%s'...", dir)
		inputs := []client.Input{{Key: "competition_dir", Value: dir}}
		debugArgv("dispatching workflow", gh.Argv("workflow", "run", scaffold.DownloadWorkflow))
		if err := gh.RunWorkflow(cmd.Context(), scaffold.DownloadWorkflow, inputs...); err != nil {
			return toolFailed("gh workflow run failed.", err)
		}

		printer.Blank()
		printer.Success("Workflow started.")
		printer.Hint("Check progress:  ", "gh run list --limit 1")
		printer.Hint("Fetch artifacts: ", "gh run download <run_id> --dir data/")

		if web, _ := cmd.Flags().GetBool("web"); web {
			openWorkflowPage(cmd.Context(), gh, scaffold.DownloadWorkflow)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().Bool("web", false, "Open the workflow's Actions page in the browser")
}
