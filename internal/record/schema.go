package record

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTypeMismatch = errors.New("minisql: type mismatch")

type ColumnType uint8

const (
	ColInt ColumnType = iota + 1
	ColText
	ColFloat
)

// String returns the token used for the type in table files and CREATE TABLE.
func (t ColumnType) String() string {
	switch t {
	case ColInt:
		return "INT"
	case ColText:
		return "TEXT"
	case ColFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

// ParseColumnType maps a SQL/table-file type name to a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INT", "INTEGER":
		return ColInt, nil
	case "TEXT":
		return ColText, nil
	case "FLOAT":
		return ColFloat, nil
	default:
		return 0, fmt.Errorf("unsupported column type: %s", s)
	}
}

type Column struct {
	Name string
	Type ColumnType
}

// Schema is the fixed, ordered column list of a table.
type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColumnIndex returns the position of the named column, or -1.
func (s Schema) ColumnIndex(name string) int {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) Names() []string {
	out := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		out[i] = c.Name
	}
	return out
}

// CheckValue reports whether v may be stored in column c.
func (c Column) CheckValue(v Value) error {
	if Compatible(v, c.Type) {
		return nil
	}
	return fmt.Errorf("%w for column '%s': expected %s, got %s", ErrTypeMismatch, c.Name, c.Type, v.Kind())
}

// CheckRow validates arity first, then every value against its column.
func (s Schema) CheckRow(values []Value) error {
	if len(values) != len(s.Cols) {
		return fmt.Errorf("%w: expected %d values, got %d", ErrTypeMismatch, len(s.Cols), len(values))
	}
	for i, col := range s.Cols {
		if err := col.CheckValue(values[i]); err != nil {
			return err
		}
	}
	return nil
}
