package store

// State represents the initialization state of the workspace database.
type State int

const (
	StateMissing       State = iota // File doesn't exist
	StateUninitialized              // File exists but no schema
	StateDirty                      // A migration failed partway through
	StateOutdated                   // Schema behind the embedded migrations
	StateReady                      // Migrated to the latest version
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateDirty:
		return "dirty"
	case StateOutdated:
		return "outdated"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Table holds a full table load: the column names plus every row with values
// rendered as strings. It is the in-memory structure the viewer displays.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Store defines the workspace database contract.
// Implementations must be safe for concurrent use.
type Store interface {
	// Open opens the database connection
	Open() error

	// Close closes the database connection
	Close() error

	// Migrate applies the placeholder schema migrations
	Migrate() error

	// Drop rolls the placeholder schema back down
	Drop() error

	// Seed inserts the sample rows when the placeholder table is empty,
	// returning the number of rows inserted
	Seed() (int, error)

	// CheckState returns the current state of the database
	CheckState() (State, error)

	// Version returns the current migration version and dirty flag
	Version() (version uint, dirty bool, err error)

	// Tables lists user tables, excluding SQLite internals and migration
	// bookkeeping
	Tables() ([]string, error)

	// Dump loads an entire table into memory; limit <= 0 loads all rows
	Dump(table string, limit int) (*Table, error)

	// Count returns the number of rows in a table
	Count(table string) (int64, error)
}
