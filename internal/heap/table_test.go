package heap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/minisql/internal/record"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()

	schema := record.Schema{
		Cols: []record.Column{
			{Name: "id", Type: record.ColInt},
			{Name: "name", Type: record.ColText},
		},
	}
	tbl := NewTable("users", schema)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := tbl.Insert([]record.Value{record.IntValue(int64(i)), record.TextValue(name)})
		require.NoError(t, err)
	}
	return tbl
}

func TestTable_InsertReturnsPosition(t *testing.T) {
	tbl := newTestTable(t)

	pos, err := tbl.Insert([]record.Value{record.IntValue(9), record.Null()})
	require.NoError(t, err)
	require.Equal(t, 5, pos)
	require.Equal(t, 6, tbl.RowCount())
}

func TestTable_InsertRejectsBadRow(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Insert([]record.Value{record.TextValue("x"), record.TextValue("y")})
	require.True(t, errors.Is(err, record.ErrTypeMismatch))

	_, err = tbl.Insert([]record.Value{record.IntValue(1)})
	require.True(t, errors.Is(err, record.ErrTypeMismatch))

	require.Equal(t, 5, tbl.RowCount())
}

func TestTable_InsertCopiesInput(t *testing.T) {
	tbl := newTestTable(t)
	vals := []record.Value{record.IntValue(7), record.TextValue("z")}
	pos, err := tbl.Insert(vals)
	require.NoError(t, err)

	vals[0] = record.IntValue(100)
	row, ok := tbl.Row(pos)
	require.True(t, ok)
	require.Equal(t, record.IntValue(7), row[0])
}

func TestTable_DeleteAtShiftsPositions(t *testing.T) {
	tbl := newTestTable(t)

	// Unsorted with a duplicate and an out-of-range position.
	n := tbl.DeleteAt([]int{3, 1, 3, 42})
	require.Equal(t, 2, n)
	require.Equal(t, 3, tbl.RowCount())

	var names []string
	require.NoError(t, tbl.Scan(func(_ int, row []record.Value) error {
		names = append(names, row[1].Text())
		return nil
	}))
	require.Equal(t, []string{"a", "c", "e"}, names)
}

func TestTable_Matching(t *testing.T) {
	tbl := newTestTable(t)

	got := tbl.Matching(0, record.Filter{Column: "id", Op: record.OpGe, Value: record.IntValue(3)})
	require.Equal(t, []int{3, 4}, got)

	got = tbl.Matching(0, record.Filter{Column: "id", Op: record.OpGt, Value: record.TextValue("3")})
	require.Empty(t, got)
}

func TestTable_SetAndSnapshot(t *testing.T) {
	tbl := newTestTable(t)

	require.NoError(t, tbl.Set([]int{0, 4}, 1, record.TextValue("zz")))
	snap := tbl.Snapshot()
	require.Equal(t, record.TextValue("zz"), snap[0][1])
	require.Equal(t, record.TextValue("zz"), snap[4][1])

	snap[0][1] = record.TextValue("mutated")
	row, _ := tbl.Row(0)
	require.Equal(t, record.TextValue("zz"), row[1])

	require.Error(t, tbl.Set([]int{0}, 5, record.Null()))
	require.Equal(t, []int{0, 1, 2, 3, 4}, tbl.AllPositions())
}
