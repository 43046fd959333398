package minisql

import (
	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/shell"
	"github.com/tuannm99/minisql/internal/sql/executor"
)

// DB pairs a Database with an executor so callers can speak SQL directly.
type DB struct {
	*Database
	ex *executor.Executor
}

// Open loads every table under dir.
func Open(dir string) (*DB, error) {
	db, err := engine.Open(dir)
	if err != nil {
		return nil, err
	}
	return &DB{Database: db, ex: executor.NewExecutor(db)}, nil
}

// Exec parses, plans and runs one statement.
func (db *DB) Exec(sql string) (*Result, error) {
	return db.ex.ExecSQL(sql)
}

// Format renders res the same way the interactive shell does.
func Format(res *Result) string {
	return shell.FormatResult(res)
}
