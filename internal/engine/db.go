package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/tuannm99/minisql/internal/btree"
	"github.com/tuannm99/minisql/internal/heap"
	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/storage"
)

// DatabaseOperation is everything the executor needs from a Database.
type DatabaseOperation interface {
	CreateTable(name string, cols []record.Column) error
	CreateIndex(table, column string) error
	InsertRow(table string, values []record.Value) error
	DeleteRows(table string, filter *record.Filter) (int, error)
	UpdateRows(table, column string, value record.Value, filter *record.Filter) (int, error)
	SelectAll(table string) ([]string, [][]record.Value, error)
	SelectWithFilter(table string, columns []string, filter *record.Filter) ([]string, [][]record.Value, error)
	ListTables() []string
}

var _ DatabaseOperation = (*Database)(nil)

// Database owns every table and index. It has a single owner and does no
// locking; each mutating call rewrites the affected table file before it
// returns.
type Database struct {
	DataDir string
	SM      *storage.StorageManager

	tables  map[string]*heap.Table
	indexes map[string]map[string]*btree.Index // table -> column -> index
}

// NewDatabase creates an empty database handle without touching the filesystem.
func NewDatabase(dataDir string) *Database {
	return &Database{
		DataDir: dataDir,
		SM:      storage.NewStorageManager(dataDir),
		tables:  make(map[string]*heap.Table),
		indexes: make(map[string]map[string]*btree.Index),
	}
}

// Open loads every table file in dataDir. Indexes are not persisted, so the
// caller has to recreate them.
func Open(dataDir string) (*Database, error) {
	db := NewDatabase(dataDir)

	tables, err := db.SM.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load tables: %w", ErrIO, err)
	}
	for _, tbl := range tables {
		db.tables[tbl.Name] = tbl
	}

	slog.Debug("engine: database opened", "dir", dataDir, "tables", len(tables))
	return db, nil
}

func (db *Database) Close() error {
	return nil
}

func (db *Database) table(name string) (*heap.Table, error) {
	tbl, ok := db.tables[name]
	if !ok {
		return nil, errTableNotFound(name)
	}
	return tbl, nil
}

func (db *Database) persist(tbl *heap.Table) error {
	if err := db.SM.Save(tbl); err != nil {
		return fmt.Errorf("%w: failed to save table '%s': %w", ErrIO, tbl.Name, err)
	}
	return nil
}

// rebuildIndexes rebuilds every index on tbl from its current rows.
func (db *Database) rebuildIndexes(tbl *heap.Table) {
	for _, ix := range db.indexes[tbl.Name] {
		ix.Build(tbl.Rows)
	}
}

// ListTables returns table names in sorted order.
func (db *Database) ListTables() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TableSchema returns a copy of the table's column definitions.
func (db *Database) TableSchema(name string) ([]record.Column, error) {
	tbl, err := db.table(name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(tbl.Schema.Cols), nil
}

// Indexes returns the indexed column names of a table, sorted.
func (db *Database) Indexes(table string) ([]string, error) {
	if _, err := db.table(table); err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(db.indexes[table]))
	for col := range db.indexes[table] {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	return cols, nil
}

// RowCount reports the number of rows in a table.
func (db *Database) RowCount(table string) (int, error) {
	tbl, err := db.table(table)
	if err != nil {
		return 0, err
	}
	return tbl.RowCount(), nil
}
