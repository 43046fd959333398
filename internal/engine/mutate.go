package engine

import (
	"fmt"

	"github.com/tuannm99/minisql/internal/btree"
	"github.com/tuannm99/minisql/internal/heap"
	"github.com/tuannm99/minisql/internal/record"
)

// CreateTable registers a new empty table and writes its file. No index is
// created.
func (db *Database) CreateTable(name string, cols []record.Column) error {
	if _, exists := db.tables[name]; exists {
		return errTableExists(name)
	}
	if len(cols) == 0 {
		return errBadColumns(fmt.Sprintf("Table '%s' must have at least one column", name))
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c.Name]; dup {
			return errBadColumns(fmt.Sprintf("Duplicate column '%s' in table '%s'", c.Name, name))
		}
		seen[c.Name] = struct{}{}
	}

	tbl := heap.NewTable(name, record.Schema{Cols: append([]record.Column(nil), cols...)})
	if err := db.persist(tbl); err != nil {
		return err
	}

	db.tables[name] = tbl
	return nil
}

// CreateIndex builds an index on table.column from the current rows,
// replacing any index already on that column.
func (db *Database) CreateIndex(table, column string) error {
	tbl, err := db.table(table)
	if err != nil {
		return err
	}
	pos := tbl.ColumnIndex(column)
	if pos < 0 {
		return errColumnNotFound(column)
	}

	ix := btree.NewIndex(column, pos)
	ix.Build(tbl.Rows)

	if db.indexes[table] == nil {
		db.indexes[table] = make(map[string]*btree.Index)
	}
	db.indexes[table][column] = ix
	return nil
}

// InsertRow appends one row. Existing indexes are extended in place because
// appending never shifts a position.
func (db *Database) InsertRow(table string, values []record.Value) error {
	tbl, err := db.table(table)
	if err != nil {
		return err
	}

	pos, err := tbl.Insert(values)
	if err != nil {
		return err
	}

	for _, ix := range db.indexes[table] {
		ix.Insert(pos, values[ix.Position()])
	}

	return db.persist(tbl)
}

// DeleteRows removes every row matching filter (all rows when filter is nil)
// and returns how many were removed. Removal shifts later positions, so every
// index on the table is rebuilt.
func (db *Database) DeleteRows(table string, filter *record.Filter) (int, error) {
	tbl, err := db.table(table)
	if err != nil {
		return 0, err
	}

	var targets []int
	if filter != nil {
		col := tbl.ColumnIndex(filter.Column)
		if col < 0 {
			return 0, errColumnNotFound(filter.Column)
		}
		targets = tbl.Matching(col, *filter)
	} else {
		targets = tbl.AllPositions()
	}

	count := tbl.DeleteAt(targets)
	db.rebuildIndexes(tbl)

	if err := db.persist(tbl); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateRows sets column to value on every row matching filter (all rows when
// filter is nil) and returns how many rows were updated.
//
// If the updated column is indexed, every index on the table is rebuilt, not
// just the one on that column.
func (db *Database) UpdateRows(table, column string, value record.Value, filter *record.Filter) (int, error) {
	tbl, err := db.table(table)
	if err != nil {
		return 0, err
	}

	target := tbl.ColumnIndex(column)
	if target < 0 {
		return 0, errColumnNotFound(column)
	}
	if err := tbl.Schema.Cols[target].CheckValue(value); err != nil {
		return 0, err
	}

	var positions []int
	if filter != nil {
		col := tbl.ColumnIndex(filter.Column)
		if col < 0 {
			return 0, errColumnNotFound(filter.Column)
		}
		positions = tbl.Matching(col, *filter)
	} else {
		positions = tbl.AllPositions()
	}

	if err := tbl.Set(positions, target, value); err != nil {
		return 0, err
	}

	if _, indexed := db.indexes[table][column]; indexed {
		db.rebuildIndexes(tbl)
	}

	if err := db.persist(tbl); err != nil {
		return 0, err
	}
	return len(positions), nil
}
