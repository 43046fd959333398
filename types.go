// Package minisql is the top-level facade for embedding the engine: open a
// data directory and run SQL statements against it.
package minisql

import (
	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/sql/executor"
	"github.com/tuannm99/minisql/internal/sql/parser"
	"github.com/tuannm99/minisql/internal/sql/planner"
)

type (
	Database = engine.Database
	Result   = executor.Result
	Value    = record.Value
	Column   = record.Column
)

var (
	ErrSyntax         = parser.ErrSyntax
	ErrPlan           = planner.ErrPlan
	ErrSchema         = engine.ErrSchema
	ErrTableNotFound  = engine.ErrTableNotFound
	ErrTableExists    = engine.ErrTableExists
	ErrColumnNotFound = engine.ErrColumnNotFound
	ErrTypeMismatch   = engine.ErrTypeMismatch
	ErrIO             = engine.ErrIO
)
