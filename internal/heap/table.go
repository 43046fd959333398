package heap

import (
	"fmt"
	"slices"

	"github.com/tuannm99/minisql/internal/record"
)

// Table is an ordered sequence of rows under a fixed schema. A row's position
// is its index in Rows; positions are dense and shift down when an earlier
// row is removed.
type Table struct {
	Name   string
	Schema record.Schema
	Rows   [][]record.Value
}

func NewTable(name string, schema record.Schema) *Table {
	return &Table{
		Name:   name,
		Schema: schema,
		Rows:   make([][]record.Value, 0),
	}
}

func (t *Table) ColumnIndex(name string) int { return t.Schema.ColumnIndex(name) }

func (t *Table) RowCount() int { return len(t.Rows) }

// Insert validates values against the schema and appends them. It returns the
// position of the new row.
func (t *Table) Insert(values []record.Value) (int, error) {
	if err := t.Schema.CheckRow(values); err != nil {
		return -1, err
	}
	pos := len(t.Rows)
	t.Rows = append(t.Rows, record.CloneRow(values))
	return pos, nil
}

// Scan calls fn for each row in position order. The row must not be retained.
func (t *Table) Scan(fn func(pos int, row []record.Value) error) error {
	for pos, row := range t.Rows {
		if err := fn(pos, row); err != nil {
			return err
		}
	}
	return nil
}

// Matching returns, in ascending order, the positions whose value at column
// col satisfies f.
func (t *Table) Matching(col int, f record.Filter) []int {
	var out []int
	for pos, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		if record.Compare(row[col], f.Op, f.Value) {
			out = append(out, pos)
		}
	}
	return out
}

// AllPositions returns 0..RowCount()-1.
func (t *Table) AllPositions() []int {
	out := make([]int, len(t.Rows))
	for i := range out {
		out[i] = i
	}
	return out
}

// AllColumnPositions returns 0..NumCols()-1.
func (t *Table) AllColumnPositions() []int {
	out := make([]int, t.Schema.NumCols())
	for i := range out {
		out[i] = i
	}
	return out
}

// DeleteAt removes the rows at the given positions. Positions are processed in
// descending order so each removal leaves the remaining targets valid.
func (t *Table) DeleteAt(positions []int) int {
	desc := slices.Clone(positions)
	slices.Sort(desc)
	desc = slices.Compact(desc)
	slices.Reverse(desc)

	removed := 0
	for _, pos := range desc {
		if pos < 0 || pos >= len(t.Rows) {
			continue
		}
		t.Rows = slices.Delete(t.Rows, pos, pos+1)
		removed++
	}
	return removed
}

// Set overwrites column col of every listed row with v. The value must
// already be checked against the column type.
func (t *Table) Set(positions []int, col int, v record.Value) error {
	if col < 0 || col >= t.Schema.NumCols() {
		return fmt.Errorf("heap: column position %d out of range", col)
	}
	for _, pos := range positions {
		t.Rows[pos][col] = v
	}
	return nil
}

// Row returns a copy of the row at pos.
func (t *Table) Row(pos int) ([]record.Value, bool) {
	if pos < 0 || pos >= len(t.Rows) {
		return nil, false
	}
	return record.CloneRow(t.Rows[pos]), true
}

// Snapshot deep-copies every row.
func (t *Table) Snapshot() [][]record.Value {
	out := make([][]record.Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = record.CloneRow(row)
	}
	return out
}
