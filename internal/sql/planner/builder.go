package planner

import (
	"errors"
	"fmt"

	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/sql/parser"
)

// ErrPlan wraps statements that parse but cannot be planned: unknown column
// types, operators or literal kinds.
var ErrPlan = errors.New("minisql: planning error")

// BuildPlan turns an AST statement into a plan. It does not consult the
// catalog; table and column names are resolved at execution time.
func BuildPlan(stmt parser.Statement) (Plan, error) {
	var (
		p   Plan
		err error
	)
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		p, err = buildCreateTablePlan(s)
	case *parser.CreateIndexStmt:
		p = &CreateIndexPlan{TableName: s.TableName, Column: s.Column}
	case *parser.InsertStmt:
		p, err = buildInsertPlan(s)
	case *parser.SelectStmt:
		p, err = buildScanPlan(s)
	case *parser.DeleteStmt:
		p, err = buildDeletePlan(s)
	case *parser.UpdateStmt:
		p, err = buildUpdatePlan(s)
	default:
		return nil, fmt.Errorf("%w: unsupported statement type %T", ErrPlan, stmt)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlan, err)
	}
	return p, nil
}

func buildCreateTablePlan(s *parser.CreateTableStmt) (Plan, error) {
	cols := make([]record.Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		colType, err := record.ParseColumnType(c.Type)
		if err != nil {
			return nil, err
		}
		cols = append(cols, record.Column{Name: c.Name, Type: colType})
	}
	return &CreateTablePlan{TableName: s.TableName, Cols: cols}, nil
}

func buildInsertPlan(s *parser.InsertStmt) (Plan, error) {
	values := make([]record.Value, 0, len(s.Values))
	for _, e := range s.Values {
		v, err := evalLiteral(e)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &InsertPlan{TableName: s.TableName, Values: values}, nil
}

func buildScanPlan(s *parser.SelectStmt) (Plan, error) {
	filter, err := buildFilter(s.Where)
	if err != nil {
		return nil, err
	}
	return &ScanPlan{
		TableName: s.TableName,
		Columns:   s.Columns,
		Filter:    filter,
	}, nil
}

func buildDeletePlan(s *parser.DeleteStmt) (Plan, error) {
	filter, err := buildFilter(s.Where)
	if err != nil {
		return nil, err
	}
	return &DeletePlan{TableName: s.TableName, Filter: filter}, nil
}

func buildUpdatePlan(s *parser.UpdateStmt) (Plan, error) {
	v, err := evalLiteral(s.Set.Value)
	if err != nil {
		return nil, err
	}
	filter, err := buildFilter(s.Where)
	if err != nil {
		return nil, err
	}
	return &UpdatePlan{
		TableName: s.TableName,
		Column:    s.Set.Column,
		Value:     v,
		Filter:    filter,
	}, nil
}

func buildFilter(w *parser.WhereExpr) (*record.Filter, error) {
	if w == nil {
		return nil, nil
	}
	op, err := record.ParseOperator(w.Op)
	if err != nil {
		return nil, err
	}
	v, err := evalLiteral(w.Value)
	if err != nil {
		return nil, err
	}
	return &record.Filter{Column: w.Column, Op: op, Value: v}, nil
}

// evalLiteral converts a parsed literal into a typed value. No coercion is
// done here: an INT literal stays an INT even when the target column is FLOAT.
func evalLiteral(e parser.Expr) (record.Value, error) {
	lit, ok := e.(*parser.LiteralExpr)
	if !ok {
		return record.Value{}, fmt.Errorf("unsupported expression %T", e)
	}
	switch v := lit.Value.(type) {
	case nil:
		return record.Null(), nil
	case int64:
		return record.IntValue(v), nil
	case float64:
		return record.FloatValue(v), nil
	case string:
		return record.TextValue(v), nil
	default:
		return record.Value{}, fmt.Errorf("unsupported literal %T", v)
	}
}
