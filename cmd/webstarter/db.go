package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/unqdlphn/web-app-starter/internal/config"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/store"
	"github.com/unqdlphn/web-app-starter/internal/store/sqlite"
	"github.com/unqdlphn/web-app-starter/internal/tableview"
)

var (
	dbPath    string
	viewLimit int
)

func newDBCmd(cfg config.Config) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	dbCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "database file (defaults to data/database.db in the current directory)")

	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the database and apply the schema",
		RunE:  runDBCreate,
	}
	dbSeedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter rows into the placeholder table",
		RunE:  runDBSeed,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema integrity and version",
		RunE:  runDBVerify,
	}
	dbDropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Roll back the schema, removing the placeholder table",
		RunE:  runDBDrop,
	}
	dbTablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the database",
		RunE:  runDBTables,
	}
	dbViewCmd := &cobra.Command{
		Use:   "view [table]",
		Short: "Print a table's rows",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDBView,
	}
	dbViewCmd.Flags().IntVar(&viewLimit, "limit", 0, "maximum rows to print (0 for all)")

	dbCmd.AddCommand(dbCreateCmd, dbSeedCmd, dbVerifyCmd, dbDropCmd, dbTablesCmd, dbViewCmd)
	return dbCmd
}

// resolveDBPath picks the database file: the --db flag (or env) when
// set, otherwise the workspace database under the current directory.
func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return project.DBPath(".")
}

// openDB opens the database for a db subcommand. Unless create is set,
// a missing file is an error instead of being silently created.
func openDB(create bool) (store.Store, error) {
	p := resolveDBPath()

	if create {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else {
		exists, err := store.CheckExists(p)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("database %s does not exist (run 'webstarter db create' first)", p)
		}
	}

	st := sqlite.New(p, logger.Default)
	if err := st.Open(); err != nil {
		return nil, err
	}
	return st, nil
}

func runDBCreate(cmd *cobra.Command, args []string) error {
	st, err := openDB(true)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Database ready at %s\n", resolveDBPath())
	return nil
}

func runDBSeed(cmd *cobra.Command, args []string) error {
	st, err := openDB(false)
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := st.Seed()
	if err != nil {
		return err
	}

	if added == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already has rows, nothing to do\n", store.PlaceholderTable)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d rows into %s\n", added, store.PlaceholderTable)
	return nil
}

func runDBVerify(cmd *cobra.Command, args []string) error {
	st, err := openDB(false)
	if err != nil {
		return err
	}
	defer st.Close()

	state, err := st.CheckState()
	if err != nil {
		return err
	}

	version, dirty, err := st.Version()
	if err != nil {
		return err
	}

	size, _ := store.FileSize(resolveDBPath())

	fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", resolveDBPath())
	fmt.Fprintf(cmd.OutOrStdout(), "  State:   %s\n", state)
	fmt.Fprintf(cmd.OutOrStdout(), "  Version: %d (dirty=%v)\n", version, dirty)
	fmt.Fprintf(cmd.OutOrStdout(), "  Size:    %s\n", humanize.Bytes(uint64(size)))

	if state != store.StateReady {
		return fmt.Errorf("database is %s", state)
	}
	return nil
}

func runDBDrop(cmd *cobra.Command, args []string) error {
	st, err := openDB(false)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Drop(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Dropped the managed tables from %s\n", resolveDBPath())
	return nil
}

func runDBTables(cmd *cobra.Command, args []string) error {
	st, err := openDB(false)
	if err != nil {
		return err
	}
	defer st.Close()

	tables, err := st.Tables()
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tables (run 'webstarter db create')")
		return nil
	}
	for _, name := range tables {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runDBView(cmd *cobra.Command, args []string) error {
	table := store.PlaceholderTable
	if len(args) > 0 {
		table = args[0]
	}

	st, err := openDB(false)
	if err != nil {
		return err
	}
	defer st.Close()

	dump, err := st.Dump(table, viewLimit)
	if err != nil {
		return err
	}

	return tableview.Render(cmd.OutOrStdout(), dump)
}
