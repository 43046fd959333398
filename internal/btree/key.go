package btree

import (
	"cmp"

	"github.com/tuannm99/minisql/internal/record"
)

// keyKind fixes the cross-variant order of index keys. A column is
// homogeneous in practice, so this order only has to be total, not useful.
type keyKind uint8

const (
	keyInt keyKind = iota
	keyText
	keyFloat
	keyNull
)

// Key is the comparable form of a record.Value.
type Key struct {
	kind keyKind
	i    int64
	s    string
	f    float64
}

// KeyOf derives the index key of v.
func KeyOf(v record.Value) Key {
	switch v.Kind() {
	case record.KindInt:
		return Key{kind: keyInt, i: v.Int()}
	case record.KindText:
		return Key{kind: keyText, s: v.Text()}
	case record.KindFloat:
		return Key{kind: keyFloat, f: v.Float()}
	default:
		return Key{kind: keyNull}
	}
}

// Compare orders keys by kind first, then by value. NaN floats sort below
// every other float and are equal to each other.
func (k Key) Compare(o Key) int {
	if k.kind != o.kind {
		return cmp.Compare(k.kind, o.kind)
	}
	switch k.kind {
	case keyInt:
		return cmp.Compare(k.i, o.i)
	case keyText:
		return cmp.Compare(k.s, o.s)
	case keyFloat:
		return cmp.Compare(k.f, o.f)
	default:
		return 0
	}
}

func (k Key) Less(o Key) bool { return k.Compare(o) < 0 }
