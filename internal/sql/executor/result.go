package executor

import "github.com/tuannm99/minisql/internal/record"

// Result is what one statement produces. DDL and DML fill Message; queries
// fill Columns and Rows and leave Message empty.
type Result struct {
	Message string

	Columns []string
	Rows    [][]record.Value

	// For DML:
	AffectedRows int
}

// IsQuery reports whether r carries a row set.
func (r *Result) IsQuery() bool { return r.Message == "" }
