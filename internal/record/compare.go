package record

import (
	"cmp"
	"fmt"
)

type Operator uint8

const (
	OpEq Operator = iota + 1
	OpNe
	OpGt
	OpLt
	OpGe
	OpLe
)

func (op Operator) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	default:
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
}

// ParseOperator accepts the SQL spellings of the comparison operators.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "=":
		return OpEq, nil
	case "!=", "<>":
		return OpNe, nil
	case ">":
		return OpGt, nil
	case "<":
		return OpLt, nil
	case ">=":
		return OpGe, nil
	case "<=":
		return OpLe, nil
	default:
		return 0, fmt.Errorf("unsupported operator: %q", s)
	}
}

// Filter is a single-column predicate: <Column> <Op> <Value>.
type Filter struct {
	Column string
	Op     Operator
	Value  Value
}

// Compare evaluates left <op> right.
//
// = and != use Equal. Ordering operators only match when both sides are the
// same non-null kind; anything else is "no match", never an error.
func Compare(left Value, op Operator, right Value) bool {
	switch op {
	case OpEq:
		return Equal(left, right)
	case OpNe:
		return !Equal(left, right)
	}

	c, ok := order(left, right)
	if !ok {
		return false
	}
	switch op {
	case OpGt:
		return c > 0
	case OpLt:
		return c < 0
	case OpGe:
		return c >= 0
	case OpLe:
		return c <= 0
	default:
		return false
	}
}

// order compares two values of the same non-null kind. NaN compares false
// against everything, so it is reported as unordered.
func order(a, b Value) (int, bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindInt:
		return cmp.Compare(a.i, b.i), true
	case KindText:
		return cmp.Compare(a.s, b.s), true
	case KindFloat:
		if a.f != a.f || b.f != b.f {
			return 0, false
		}
		return cmp.Compare(a.f, b.f), true
	default:
		return 0, false
	}
}
