package engine

import (
	"errors"

	"github.com/tuannm99/minisql/internal/record"
)

var (
	// ErrSchema matches every unknown-table, unknown-column and duplicate-name
	// failure.
	ErrSchema         = errors.New("minisql: schema error")
	ErrTableNotFound  = errors.New("minisql: table not found")
	ErrTableExists    = errors.New("minisql: table already exists")
	ErrColumnNotFound = errors.New("minisql: column not found")
	ErrBadColumns     = errors.New("minisql: invalid column list")

	ErrTypeMismatch = record.ErrTypeMismatch

	// ErrIO wraps failures writing or reading table files.
	ErrIO = errors.New("minisql: io error")
)

// schemaError reads like the message the user should see and matches both
// ErrSchema and its specific sentinel under errors.Is.
type schemaError struct {
	kind error
	msg  string
}

func (e *schemaError) Error() string { return e.msg }

func (e *schemaError) Is(target error) bool {
	return target == ErrSchema || target == e.kind
}

func errTableNotFound(name string) error {
	return &schemaError{kind: ErrTableNotFound, msg: "Table '" + name + "' does not exist"}
}

func errTableExists(name string) error {
	return &schemaError{kind: ErrTableExists, msg: "Table '" + name + "' already exists"}
}

func errColumnNotFound(name string) error {
	return &schemaError{kind: ErrColumnNotFound, msg: "Column '" + name + "' does not exist"}
}

func errBadColumns(msg string) error {
	return &schemaError{kind: ErrBadColumns, msg: msg}
}
