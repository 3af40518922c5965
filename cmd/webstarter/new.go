package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unqdlphn/web-app-starter/internal/config"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/scaffold"
	"github.com/unqdlphn/web-app-starter/internal/shell"
)

var (
	newDir        string
	pythonBin     string
	pythonVersion string
	gitRemote     string
	gitPush       bool
	skipGit       bool
	skipVenv      bool
	skipDB        bool
	force         bool
	dryRun        bool
)

func newNewCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new project workspace",
		Long: `Create a new project workspace: directory layout, Flask and Streamlit
starter files, a virtualenv with dependencies installed, a seeded SQLite
database, and an initialized git repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := shell.NewExecRunner(dryRun, logger.Default, cmd.OutOrStdout())
			sc := scaffold.New(runner, logger.Default, cmd.OutOrStdout(), version.String())

			_, err := sc.Run(cmd.Context(), scaffold.Options{
				Name:          args[0],
				Dir:           newDir,
				PythonBin:     pythonBin,
				PythonVersion: pythonVersion,
				Remote:        gitRemote,
				Push:          gitPush,
				SkipGit:       skipGit,
				SkipVenv:      skipVenv,
				SkipDB:        skipDB,
				Force:         force,
				DryRun:        dryRun,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&newDir, "dir", ".", "parent directory for the new project")
	cmd.Flags().StringVar(&pythonBin, "python", cfg.PythonBin, "python interpreter used to create the virtualenv")
	cmd.Flags().StringVar(&pythonVersion, "python-version", cfg.PythonVersion, "python version recorded in .python-version")
	cmd.Flags().StringVar(&gitRemote, "remote", "", "git remote URL to add as origin")
	cmd.Flags().BoolVar(&gitPush, "push", false, "push the initial commit to origin")
	cmd.Flags().BoolVar(&skipGit, "skip-git", false, "skip git repository setup")
	cmd.Flags().BoolVar(&skipVenv, "skip-venv", false, "skip virtualenv creation and dependency install")
	cmd.Flags().BoolVar(&skipDB, "skip-db", false, "skip database creation and seeding")
	cmd.Flags().BoolVar(&force, "force", false, "scaffold into a non-empty directory, overwriting starter files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be done without doing it")

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Report what is present and missing in a project workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			runner := shell.NewExecRunner(false, logger.Default, cmd.OutOrStdout())
			sc := scaffold.New(runner, logger.Default, cmd.OutOrStdout(), version.String())

			report := sc.Inspect(dir)
			report.Print(cmd.OutOrStdout())

			if !report.Healthy {
				return fmt.Errorf("%s", report.Message)
			}
			return nil
		},
	}
}
