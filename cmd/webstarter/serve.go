package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/unqdlphn/web-app-starter/internal/config"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/server"
)

var (
	serveAddr string
	serveDir  string
	serveDB   string
	exitAfter time.Duration
)

func newServeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview a scaffolded project over HTTP",
		Long: `Serve the generated index page and static assets of a project
workspace, with /live, /ready, and /status endpoints reporting database
health. This previews the scaffold output without a Python install; the
real app runs with 'flask run'.`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", cfg.HTTPAddr, "listen address")
	cmd.Flags().StringVar(&serveDir, "dir", ".", "project workspace to preview")
	cmd.Flags().StringVar(&serveDB, "db", cfg.DBPath, "database file (defaults to the workspace database)")
	cmd.Flags().DurationVar(&exitAfter, "exit-after", 0, "optional runtime; if set, server exits after this duration (testing)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	if !project.IsWorkspace(serveDir) {
		return fmt.Errorf("%s is not a webstarter project (no %s)", serveDir, project.ManifestFile)
	}

	srv := server.New(server.Config{
		Addr:            serveAddr,
		Dir:             serveDir,
		DBPath:          serveDB,
		ShutdownTimeout: shutdownTO,
		Version:         version.String(),
	}, logger.Default)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional run timer
	if exitAfter > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, exitAfter)
		defer cancel()
	}

	return srv.ListenAndServe(ctx)
}
