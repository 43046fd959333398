package record

import (
	"strconv"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindText
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindText:
		return "Text"
	case KindFloat:
		return "Float"
	default:
		return "Null"
	}
}

// Value is a single cell. Only the field matching Kind is meaningful; the zero
// Value is NULL.
type Value struct {
	kind Kind
	i    int64
	s    string
	f    float64
}

func IntValue(n int64) Value     { return Value{kind: KindInt, i: n} }
func TextValue(s string) Value   { return Value{kind: KindText, s: s} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func Null() Value                { return Value{} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Int() int64     { return v.i }
func (v Value) Text() string   { return v.s }
func (v Value) Float() float64 { return v.f }

// String is a debugging form; display and on-disk encodings live elsewhere.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return strconv.Quote(v.s)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return "NULL"
	}
}

// Equal is structural and type-sensitive: NULL equals only NULL and values of
// different kinds are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInt:
		return a.i == b.i
	case KindText:
		return a.s == b.s
	case KindFloat:
		return a.f == b.f
	default:
		return true
	}
}

// Compatible reports whether v can live in a column of type t. There is no
// coercion between INT and FLOAT.
func Compatible(v Value, t ColumnType) bool {
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return t == ColInt
	case KindText:
		return t == ColText
	case KindFloat:
		return t == ColFloat
	default:
		return false
	}
}

// CloneRow copies a row so callers never alias stored data.
func CloneRow(row []Value) []Value {
	cp := make([]Value, len(row))
	copy(cp, row)
	return cp
}
