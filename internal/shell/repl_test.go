package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/sql/executor"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	db := engine.NewDatabase(t.TempDir())
	var out bytes.Buffer
	return New(executor.NewExecutor(db), db, &out), &out
}

func feed(s *Shell, out *bytes.Buffer, line string) string {
	out.Reset()
	s.Handle(line)
	return out.String()
}

func TestShell_ExitCommands(t *testing.T) {
	s, out := newTestShell(t)
	assert.True(t, s.Handle(".exit"))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.True(t, s.Handle("  .quit  "))
	assert.False(t, s.Handle(""))
}

func TestShell_Help(t *testing.T) {
	s, out := newTestShell(t)
	got := feed(s, out, ".help")
	assert.Contains(t, got, ".tables")
	assert.Contains(t, got, "CREATE INDEX ON table_name (col)")
}

func TestShell_UnknownMeta(t *testing.T) {
	s, out := newTestShell(t)
	got := feed(s, out, ".frobnicate now")
	assert.Contains(t, got, "Unknown command: .frobnicate now. Type .help for available commands.")
}

func TestShell_TablesSchemaIndexes(t *testing.T) {
	s, out := newTestShell(t)

	assert.Contains(t, feed(s, out, ".tables"), "No tables in database")

	assert.Contains(t, feed(s, out, "CREATE TABLE users (id INT, name TEXT)"), "Table 'users' created successfully")
	assert.Contains(t, feed(s, out, ".tables"), "  - users")

	got := feed(s, out, ".schema users")
	assert.Contains(t, got, "Table 'users':")
	assert.Contains(t, got, "  id INT")
	assert.Contains(t, got, "  name TEXT")

	assert.Contains(t, feed(s, out, ".indexes users"), "No indexes on table 'users'")
	feed(s, out, "CREATE INDEX ON users(name)")
	assert.Contains(t, feed(s, out, ".indexes users"), "  - name")

	assert.Contains(t, feed(s, out, ".schema nope"), "Table 'nope' does not exist")
	assert.Contains(t, feed(s, out, ".schema"), "Usage: .schema <table>")
	assert.Contains(t, feed(s, out, ".indexes"), "Usage: .indexes <table>")
}

func TestShell_SQLResults(t *testing.T) {
	s, out := newTestShell(t)
	feed(s, out, "CREATE TABLE t (id INT, name TEXT)")

	assert.Contains(t, feed(s, out, "SELECT * FROM t"), "No rows returned")
	assert.Contains(t, feed(s, out, "INSERT INTO t VALUES (1, 'a')"), "1 row inserted")

	got := feed(s, out, "SELECT * FROM t WHERE id = 1")
	assert.Contains(t, got, "| id | name |")
	assert.Contains(t, got, "| 1  | a    |")
	assert.Contains(t, got, "1 row(s) returned")
}

func TestShell_ErrorLabels(t *testing.T) {
	s, out := newTestShell(t)

	assert.Contains(t, feed(s, out, "SELEC * FROM t"), "✗ Parse error:")
	assert.Contains(t, feed(s, out, "CREATE TABLE t (x BOOL)"), "✗ Planning error:")
	assert.Contains(t, feed(s, out, "SELECT * FROM missing"), "✗ Execution error: Table 'missing' does not exist")
}

func TestShell_RunSQLReportsSuccess(t *testing.T) {
	s, _ := newTestShell(t)
	require.True(t, s.RunSQL("CREATE TABLE t (x INT)"))
	require.False(t, s.RunSQL("CREATE TABLE t (x INT)"))
}
