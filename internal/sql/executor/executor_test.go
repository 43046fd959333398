package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/sql/parser"
	"github.com/tuannm99/minisql/internal/sql/planner"
)

// ---- fakes ----

type fakeDB struct {
	calls []string

	filter  *record.Filter
	columns []string
	err     error
}

func (f *fakeDB) CreateTable(name string, cols []record.Column) error {
	f.calls = append(f.calls, "CreateTable")
	return f.err
}

func (f *fakeDB) CreateIndex(table, column string) error {
	f.calls = append(f.calls, "CreateIndex")
	return f.err
}

func (f *fakeDB) InsertRow(table string, values []record.Value) error {
	f.calls = append(f.calls, "InsertRow")
	return f.err
}

func (f *fakeDB) DeleteRows(table string, filter *record.Filter) (int, error) {
	f.calls = append(f.calls, "DeleteRows")
	f.filter = filter
	return 3, f.err
}

func (f *fakeDB) UpdateRows(table, column string, value record.Value, filter *record.Filter) (int, error) {
	f.calls = append(f.calls, "UpdateRows")
	f.filter = filter
	return 2, f.err
}

func (f *fakeDB) SelectAll(table string) ([]string, [][]record.Value, error) {
	f.calls = append(f.calls, "SelectAll")
	return []string{"id"}, [][]record.Value{{record.IntValue(1)}}, f.err
}

func (f *fakeDB) SelectWithFilter(table string, columns []string, filter *record.Filter) ([]string, [][]record.Value, error) {
	f.calls = append(f.calls, "SelectWithFilter")
	f.columns = columns
	f.filter = filter
	return []string{"id"}, nil, f.err
}

func (f *fakeDB) ListTables() []string { return nil }

// ---- tests: dispatch ----

func TestExecSQL_Messages(t *testing.T) {
	cases := []struct {
		sql  string
		call string
		msg  string
	}{
		{"CREATE TABLE users (id INT)", "CreateTable", "Table 'users' created successfully"},
		{"CREATE INDEX ON users(id)", "CreateIndex", "Index created on column 'id' of table 'users'"},
		{"INSERT INTO users VALUES (1)", "InsertRow", "1 row inserted"},
		{"DELETE FROM users WHERE id = 1", "DeleteRows", "3 row(s) deleted"},
		{"UPDATE users SET id = 5", "UpdateRows", "2 row(s) updated"},
	}
	for _, tc := range cases {
		db := &fakeDB{}
		res, err := NewExecutor(db).ExecSQL(tc.sql)
		require.NoError(t, err, tc.sql)
		assert.Equal(t, []string{tc.call}, db.calls, tc.sql)
		assert.Equal(t, tc.msg, res.Message, tc.sql)
		assert.False(t, res.IsQuery())
	}
}

func TestExecSQL_SelectStarWithoutFilterUsesSelectAll(t *testing.T) {
	db := &fakeDB{}
	res, err := NewExecutor(db).ExecSQL("SELECT * FROM users")
	require.NoError(t, err)
	assert.Equal(t, []string{"SelectAll"}, db.calls)
	assert.True(t, res.IsQuery())
	assert.Equal(t, []string{"id"}, res.Columns)
	assert.Len(t, res.Rows, 1)
}

func TestExecSQL_SelectStarWithFilterHonoursFilter(t *testing.T) {
	db := &fakeDB{}
	_, err := NewExecutor(db).ExecSQL("SELECT * FROM users WHERE id > 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"SelectWithFilter"}, db.calls)
	assert.Empty(t, db.columns)
	require.NotNil(t, db.filter)
	assert.Equal(t, record.OpGt, db.filter.Op)
}

func TestExecSQL_ProjectionWithoutFilter(t *testing.T) {
	db := &fakeDB{}
	res, err := NewExecutor(db).ExecSQL("SELECT id FROM users")
	require.NoError(t, err)
	assert.Equal(t, []string{"SelectWithFilter"}, db.calls)
	assert.Equal(t, []string{"id"}, db.columns)
	assert.Nil(t, db.filter)
	assert.True(t, res.IsQuery())
	assert.Empty(t, res.Rows)
}

func TestExecSQL_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	db := &fakeDB{err: boom}
	_, err := NewExecutor(db).ExecSQL("DELETE FROM users")
	require.ErrorIs(t, err, boom)

	_, err = NewExecutor(&fakeDB{}).ExecSQL("DELETE users")
	require.ErrorIs(t, err, parser.ErrSyntax)

	_, err = NewExecutor(&fakeDB{}).ExecSQL("CREATE TABLE t (x BLOB)")
	require.ErrorIs(t, err, planner.ErrPlan)
}

type unknownPlan struct{ planner.Plan }

func TestExec_UnsupportedPlan(t *testing.T) {
	_, err := NewExecutor(&fakeDB{}).Exec(unknownPlan{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported plan type")
}

// ---- tests: against a real database ----

func runAll(t *testing.T, e *Executor, stmts ...string) *Result {
	t.Helper()
	var res *Result
	for _, s := range stmts {
		var err error
		res, err = e.ExecSQL(s)
		require.NoError(t, err, s)
	}
	return res
}

func TestExecSQL_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor(engine.NewDatabase(dir))

	runAll(t, e,
		"CREATE TABLE users (id INT, name TEXT, score FLOAT)",
		"INSERT INTO users VALUES (1, 'Alice', 9.5)",
		"INSERT INTO users VALUES (2, 'Bob', NULL)",
		"INSERT INTO users VALUES (3, 'Carol', 7.25)",
		"CREATE INDEX ON users(id)",
	)

	res := runAll(t, e, "SELECT name FROM users WHERE id > 1")
	assert.Equal(t, []string{"name"}, res.Columns)
	assert.Equal(t, [][]record.Value{
		{record.TextValue("Bob")},
		{record.TextValue("Carol")},
	}, res.Rows)

	res = runAll(t, e, "UPDATE users SET score = 1.0 WHERE name = 'Bob'")
	assert.Equal(t, "1 row(s) updated", res.Message)

	res = runAll(t, e, "DELETE FROM users WHERE id < 3")
	assert.Equal(t, "2 row(s) deleted", res.Message)

	res = runAll(t, e, "SELECT * FROM users")
	assert.Equal(t, []string{"id", "name", "score"}, res.Columns)
	assert.Equal(t, [][]record.Value{
		{record.IntValue(3), record.TextValue("Carol"), record.FloatValue(7.25)},
	}, res.Rows)

	// persisted state survives a reopen
	db2, err := engine.Open(dir)
	require.NoError(t, err)
	res = runAll(t, NewExecutor(db2), "SELECT * FROM users WHERE name = 'Carol'")
	require.Len(t, res.Rows, 1)
}

func TestExecSQL_EngineErrors(t *testing.T) {
	e := NewExecutor(engine.NewDatabase(t.TempDir()))
	runAll(t, e, "CREATE TABLE t (x INT)")

	_, err := e.ExecSQL("CREATE TABLE t (y INT)")
	require.ErrorIs(t, err, engine.ErrTableExists)

	_, err = e.ExecSQL("INSERT INTO t VALUES ('nope')")
	require.ErrorIs(t, err, engine.ErrTypeMismatch)

	_, err = e.ExecSQL("SELECT y FROM t")
	require.ErrorIs(t, err, engine.ErrColumnNotFound)
	assert.Equal(t, "Column 'y' does not exist", err.Error())

	_, err = e.ExecSQL("SELECT * FROM missing")
	require.ErrorIs(t, err, engine.ErrTableNotFound)
}
