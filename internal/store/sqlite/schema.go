package sqlite

// Queries against the placeholder table created by the initial
// migration. The table name is fixed here rather than interpolated so
// the statements stay greppable.
const (
	countPlaceholderRows = `SELECT COUNT(*) FROM table1`
	insertPlaceholderRow = `INSERT INTO table1 (name, value) VALUES (?, ?)`
)

// seedRows are the starter rows Seed inserts so a fresh project has
// something to query from the Flask and Streamlit starter apps.
var seedRows = []struct {
	name  string
	value string
}{
	{"alpha", "first sample row"},
	{"beta", "second sample row"},
	{"gamma", "third sample row"},
}
