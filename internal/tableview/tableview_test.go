package tableview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unqdlphn/web-app-starter/internal/store"
)

func TestRender(t *testing.T) {
	table := &store.Table{
		Name:    "table1",
		Columns: []string{"id", "name", "value"},
		Rows: [][]string{
			{"1", "alpha", "first sample row"},
			{"2", "beta", "second sample row"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))

	want := "id  name   value\n" +
		"--  -----  -----------------\n" +
		"1   alpha  first sample row\n" +
		"2   beta   second sample row\n" +
		"\n2 rows\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderSingleRow(t *testing.T) {
	table := &store.Table{
		Name:    "table1",
		Columns: []string{"id"},
		Rows:    [][]string{{"1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))
	assert.Contains(t, buf.String(), "1 row\n")
	assert.NotContains(t, buf.String(), "1 rows")
}

func TestRenderEmptyTable(t *testing.T) {
	table := &store.Table{
		Name:    "table1",
		Columns: []string{"id", "name", "value"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))

	want := "id  name  value\n" +
		"--  ----  -----\n" +
		"\n0 rows\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderNoColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &store.Table{Name: "empty"}))
	assert.Equal(t, "\n0 rows\n", buf.String())
}

func TestRenderShortRow(t *testing.T) {
	table := &store.Table{
		Name:    "table1",
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))
	assert.Contains(t, buf.String(), "1\n")
}
