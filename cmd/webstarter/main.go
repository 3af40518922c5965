// Command webstarter scaffolds Python web projects: a Flask app with a
// Streamlit table viewer, a seeded SQLite database, a virtualenv, and a
// git repository, all from one command.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
	"github.com/unqdlphn/web-app-starter/internal/config"
	"github.com/unqdlphn/web-app-starter/internal/logger"
)

var (
	version   = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	buildDate = ""
)

var (
	quiet      bool
	shutdownTO time.Duration
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Default.Error("%v", err)
		os.Exit(2)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webstarter",
		Short: "Scaffold Python web projects with Flask, Streamlit, and SQLite",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				if std, ok := logger.Default.(*logger.StdLogger); ok {
					std.SetQuiet(true)
				}
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().DurationVar(&shutdownTO, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	rootCmd.AddCommand(
		newNewCmd(cfg),
		newStatusCmd(),
		newDBCmd(cfg),
		newServeCmd(cfg),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the webstarter version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webstarter %s\n", version.String())
			if buildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", buildDate)
			}
		},
	}
}
