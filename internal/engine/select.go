package engine

import (
	"github.com/tuannm99/minisql/internal/btree"
	"github.com/tuannm99/minisql/internal/heap"
	"github.com/tuannm99/minisql/internal/record"
)

// SelectAll returns every column and a copy of every row, unfiltered.
func (db *Database) SelectAll(table string) ([]string, [][]record.Value, error) {
	tbl, err := db.table(table)
	if err != nil {
		return nil, nil, err
	}
	return tbl.Schema.Names(), tbl.Snapshot(), nil
}

// SelectWithFilter projects columns (all columns in schema order when empty)
// from the rows matching filter (all rows when filter is nil).
func (db *Database) SelectWithFilter(
	table string,
	columns []string,
	filter *record.Filter,
) ([]string, [][]record.Value, error) {
	tbl, err := db.table(table)
	if err != nil {
		return nil, nil, err
	}

	var proj []int
	var names []string
	if len(columns) == 0 {
		names = tbl.Schema.Names()
		proj = tbl.AllColumnPositions()
	} else {
		names = append([]string(nil), columns...)
		proj = make([]int, len(columns))
		for i, name := range columns {
			pos := tbl.ColumnIndex(name)
			if pos < 0 {
				return nil, nil, errColumnNotFound(name)
			}
			proj[i] = pos
		}
	}

	var positions []int
	if filter != nil {
		positions, err = db.filterRows(tbl, filter)
		if err != nil {
			return nil, nil, err
		}
	} else {
		positions = tbl.AllPositions()
	}

	rows := make([][]record.Value, 0, len(positions))
	for _, p := range positions {
		row := tbl.Rows[p]
		out := make([]record.Value, len(proj))
		for i, c := range proj {
			if c < len(row) {
				out[i] = row[c]
			} else {
				out[i] = record.Null()
			}
		}
		rows = append(rows, out)
	}
	return names, rows, nil
}

// filterRows picks the row source for filter. An index on the filter column
// answers =, > and <; every other operator, or a column without an index,
// falls back to a sequential scan.
func (db *Database) filterRows(tbl *heap.Table, filter *record.Filter) ([]int, error) {
	col := tbl.ColumnIndex(filter.Column)
	if col < 0 {
		return nil, errColumnNotFound(filter.Column)
	}

	if ix, ok := db.indexes[tbl.Name][filter.Column]; ok {
		if candidates, ok := indexCandidates(ix, filter); ok {
			return recheck(tbl, col, filter, candidates), nil
		}
	}
	return tbl.Matching(col, *filter), nil
}

func indexCandidates(ix *btree.Index, filter *record.Filter) ([]int, bool) {
	switch filter.Op {
	case record.OpEq:
		positions, _ := ix.Lookup(filter.Value)
		return positions, true
	case record.OpGt:
		return ix.GreaterThan(filter.Value), true
	case record.OpLt:
		return ix.LessThan(filter.Value), true
	default:
		return nil, false
	}
}

// recheck drops index candidates the predicate rejects. Keys order across
// kinds (NULL sorts after every typed key), but comparison does not, so a
// range read from the index can contain rows the predicate must not return.
// Candidate order is kept.
func recheck(tbl *heap.Table, col int, filter *record.Filter, candidates []int) []int {
	var out []int
	for _, p := range candidates {
		if p < 0 || p >= len(tbl.Rows) {
			continue
		}
		if record.Compare(tbl.Rows[p][col], filter.Op, filter.Value) {
			out = append(out, p)
		}
	}
	return out
}
