package cmd

import (
	"github.com/spf13/cobra"

	"github.com/signate-deploy/signate-deploy/client"
	"github.com/signate-deploy/signate-deploy/internal/scaffold"
)

const defaultMemo = "GitHub Actions submission"

var submitCmd = &cobra.Command{
	Use:   "submit <competition-dir> [--memo TEXT]",
	Short: "Train and submit to SIGNATE on GitHub Actions",
	Long: `Trigger the signate-submit.yml workflow for a competition directory.

The workflow downloads the data, runs train.py and submits submission.csv with
the given memo.

Examples:
  signate-deploy submit my-comp
  signate-deploy submit my-comp --memo "LightGBM baseline v1"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		memo, err := cmd.Flags().GetString("memo")
		if err != nil {
			return err
		}
		if err := requireCompetition(dir); err != nil {
			return err
		}
		gh, err := newGitHub()
		if err != nil {
			return err
		}

		printer.Step("Triggering submit workflow for '%s'...", dir)
		printer.Line("  Memo: %s", memo)
		inputs := []client.Input{
			{Key: "competition_dir", Value: dir},
			{Key: "memo", Value: memo},
		}
		debugArgv("dispatching workflow", gh.Argv("workflow", "run", scaffold.SubmitWorkflow))
		if err := gh.RunWorkflow(cmd.Context(), scaffold.SubmitWorkflow, inputs...); err != nil {
			return toolFailed("gh workflow run failed.", err)
		}

		printer.Blank()
		printer.Success("Workflow started.")
		printer.Hint("Check progress:", "gh run list --limit 1")
		printer.Hint("View the logs: ", "gh run view --log")

		if web, _ := cmd.Flags().GetBool("web"); web {
			openWorkflowPage(cmd.Context(), gh, scaffold.SubmitWorkflow)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringP("memo", "m", defaultMemo, "Submission memo")
	submitCmd.Flags().Bool("web", false, "Open the workflow's Actions page in the browser")
}
