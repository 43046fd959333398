package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/minisql/internal/engine"
	"github.com/tuannm99/minisql/internal/sql/parser"
	"github.com/tuannm99/minisql/internal/sql/planner"
)

// Executor executes a plan against a Database.
type Executor struct {
	DB engine.DatabaseOperation
}

func NewExecutor(db engine.DatabaseOperation) *Executor {
	return &Executor{DB: db}
}

// ExecSQL is the top-level entry: SQL string -> Result.
func (e *Executor) ExecSQL(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	plan, err := planner.BuildPlan(stmt)
	if err != nil {
		return nil, err
	}
	return e.Exec(plan)
}

// Exec runs one plan.
func (e *Executor) Exec(p planner.Plan) (*Result, error) {
	slog.Debug("executor: exec", "plan", fmt.Sprintf("%T", p))

	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.CreateIndexPlan:
		return e.execCreateIndex(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)
	case *planner.ScanPlan:
		return e.execScan(plan)
	case *planner.DeletePlan:
		return e.execDelete(plan)
	case *planner.UpdatePlan:
		return e.execUpdate(plan)
	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	if err := e.DB.CreateTable(p.TableName, p.Cols); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Table '%s' created successfully", p.TableName)}, nil
}

func (e *Executor) execCreateIndex(p *planner.CreateIndexPlan) (*Result, error) {
	if err := e.DB.CreateIndex(p.TableName, p.Column); err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("Index created on column '%s' of table '%s'", p.Column, p.TableName),
	}, nil
}

func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	if err := e.DB.InsertRow(p.TableName, p.Values); err != nil {
		return nil, err
	}
	return &Result{Message: "1 row inserted", AffectedRows: 1}, nil
}

// execScan takes the plain full-table path only when there is neither a
// projection nor a filter; a filter on SELECT * is always honoured.
func (e *Executor) execScan(p *planner.ScanPlan) (*Result, error) {
	var (
		cols []string
		err  error
		res  = &Result{}
	)
	if len(p.Columns) == 0 && p.Filter == nil {
		cols, res.Rows, err = e.DB.SelectAll(p.TableName)
	} else {
		cols, res.Rows, err = e.DB.SelectWithFilter(p.TableName, p.Columns, p.Filter)
	}
	if err != nil {
		return nil, err
	}
	res.Columns = cols
	return res, nil
}

func (e *Executor) execDelete(p *planner.DeletePlan) (*Result, error) {
	n, err := e.DB.DeleteRows(p.TableName, p.Filter)
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("%d row(s) deleted", n), AffectedRows: n}, nil
}

func (e *Executor) execUpdate(p *planner.UpdatePlan) (*Result, error) {
	n, err := e.DB.UpdateRows(p.TableName, p.Column, p.Value, p.Filter)
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("%d row(s) updated", n), AffectedRows: n}, nil
}
