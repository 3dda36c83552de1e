package cmd

import (
	"github.com/spf13/cobra"
)

var competitionListCmd = &cobra.Command{
	Use:   "competition-list",
	Short: "List the competitions you can join",
	Long: `Wraps 'signate competition-list'. The signate CLI is found even when it is
not on PATH (pip --user installs, virtualenvs).

Example:
  signate-deploy competition-list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSignate()
		if err != nil {
			return err
		}
		debugArgv("running", s.Argv("competition-list"))
		code, err := s.CompetitionList(cmd.Context())
		return passthroughResult("signate", code, err)
	},
}

var taskListCmd = &cobra.Command{
	Use:   "task-list <competition_key>",
	Short: "List the tasks of a competition (shows task keys)",
	Long: `Wraps 'signate task-list'. COMPETITION_KEY is the competition= parameter of
the competition URL.

Example:
  signate-deploy task-list <competition_key>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSignate()
		if err != nil {
			return err
		}
		debugArgv("running", s.Argv("task-list", "--competition_key", args[0]))
		code, err := s.TaskList(cmd.Context(), args[0])
		return passthroughResult("signate", code, err)
	},
}

var fileListCmd = &cobra.Command{
	Use:   "file-list <task_key>",
	Short: "List the files of a task (shows file keys)",
	Long: `Wraps 'signate file-list'. Find TASK_KEY with task-list.

Example:
  signate-deploy file-list <task_key>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSignate()
		if err != nil {
			return err
		}
		debugArgv("running", s.Argv("file-list", "--task_key", args[0]))
		code, err := s.FileList(cmd.Context(), args[0])
		return passthroughResult("signate", code, err)
	},
}

func init() {
	rootCmd.AddCommand(competitionListCmd)
	rootCmd.AddCommand(taskListCmd)
	rootCmd.AddCommand(fileListCmd)
}
