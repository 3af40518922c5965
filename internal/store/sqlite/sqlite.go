package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/store"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteStore implements the Store interface using modernc.org/sqlite.
// Schema changes are applied through embedded migration files.
type SQLiteStore struct {
	dbPath string
	db     *sql.DB
	dbx    *sqlx.DB
	log    logger.Logger
}

// New creates a new SQLiteStore for the database file at dbPath.
func New(dbPath string, log logger.Logger) *SQLiteStore {
	if log == nil {
		log = logger.Default
	}
	return &SQLiteStore{
		dbPath: dbPath,
		log:    log,
	}
}

// Open opens the SQLite database with safe defaults.
func (s *SQLiteStore) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Apply safe defaults
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = db
	s.dbx = sqlx.NewDb(db, "sqlite")
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate applies all pending migrations up to the latest version.
// Returns nil if no migrations were needed (already at latest version).
func (s *SQLiteStore) Migrate() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// Note: we don't close m here because it would close the underlying
	// DB connection. The migrate instance is garbage collected when no
	// longer needed.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

// Drop rolls back all migrations, removing every managed table.
func (s *SQLiteStore) Drop() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// Note: we don't close m here because it would close the underlying
	// DB connection.

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}

	return nil
}

// Version returns the current migration version and dirty state.
// Returns 0, false, nil if no migrations have been applied yet.
func (s *SQLiteStore) Version() (uint, bool, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	// Note: we don't close m here because it would close the underlying
	// DB connection.

	version, dirty, err := m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState() (store.State, error) {
	if s.db == nil {
		return store.StateMissing, fmt.Errorf("database not opened")
	}

	// Check if schema_migrations table exists
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'`).Scan(&count)
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to check schema_migrations table: %w", err)
	}

	if count == 0 {
		return store.StateUninitialized, nil
	}

	version, dirty, err := s.Version()
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to get schema version: %w", err)
	}

	if dirty {
		return store.StateDirty, nil
	}

	latest, err := latestMigrationVersion()
	if err != nil {
		return store.StateUninitialized, err
	}
	if version < latest {
		return store.StateOutdated, nil
	}

	return store.StateReady, nil
}

// Seed inserts the starter rows into the placeholder table and reports
// how many rows were added. Seeding a table that already has rows is a
// no-op so repeated runs stay safe.
func (s *SQLiteStore) Seed() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var count int
	if err := s.db.QueryRow(countPlaceholderRows).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count existing rows: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range seedRows {
		if _, err := tx.Exec(insertPlaceholderRow, row.name, row.value); err != nil {
			return 0, fmt.Errorf("failed to insert seed row %q: %w", row.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(seedRows), nil
}

// Tables lists the user tables in the database, excluding SQLite
// internals and migration bookkeeping.
func (s *SQLiteStore) Tables() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' AND name != 'schema_migrations' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Dump reads up to limit rows from the named table. A limit of zero or
// less means no limit. The table name is checked against the actual
// table list before it is interpolated into the query.
func (s *SQLiteStore) Dump(table string, limit int) (*store.Table, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	tables, err := s.Tables()
	if err != nil {
		return nil, err
	}
	if !lo.Contains(tables, table) {
		return nil, fmt.Errorf("no such table: %s", table)
	}

	query := fmt.Sprintf(`SELECT * FROM %q`, table)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := s.dbx.Queryx(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	t := &store.Table{Name: table, Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		t.Rows = append(t.Rows, lo.Map(vals, func(v any, _ int) string {
			return formatValue(v)
		}))
	}

	return t, rows.Err()
}

// Count returns the number of rows in the named table.
func (s *SQLiteStore) Count(table string) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	tables, err := s.Tables()
	if err != nil {
		return 0, err
	}
	if !lo.Contains(tables, table) {
		return 0, fmt.Errorf("no such table: %s", table)
	}

	var n int64
	if err := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}

	return n, nil
}

// newMigrate creates a migrate instance backed by the embedded
// migration files and the open database connection.
func (s *SQLiteStore) newMigrate() (*migrate.Migrate, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	drv, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m.Log = &migrateLogger{log: s.log}

	return m, nil
}

// latestMigrationVersion returns the highest version number among the
// embedded migration files. Migration files follow the format
// 000001_name.up.sql.
func latestMigrationVersion() (uint, error) {
	entries, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no migration files embedded")
	}

	var maxVersion uint
	for _, entry := range entries {
		var version uint
		if _, err := fmt.Sscanf(path.Base(entry), "%d_", &version); err == nil {
			if version > maxVersion {
				maxVersion = version
			}
		}
	}

	if maxVersion == 0 {
		return 0, fmt.Errorf("could not determine latest migration version")
	}

	return maxVersion, nil
}

// formatValue renders a scanned SQL value for display.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// migrateLogger adapts the webstarter logger to the migrate.Logger interface.
type migrateLogger struct {
	log logger.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Debug("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
