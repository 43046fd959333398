package btree

import (
	"github.com/google/btree"

	"github.com/tuannm99/minisql/internal/record"
)

// degree of the in-memory B-Tree backing every index.
const degree = 32

type entry struct {
	key       Key
	positions []int
}

func lessEntry(a, b *entry) bool { return a.key.Less(b.key) }

// Index maps the value of one column to the row positions holding it.
// Positions under a key are kept in insertion order. Indexes are derived
// state: they are never persisted and must be rebuilt whenever row positions
// shift.
type Index struct {
	column   string
	position int
	tree     *btree.BTreeG[*entry]
}

// NewIndex creates an empty index bound to column name at position pos.
func NewIndex(column string, pos int) *Index {
	return &Index{
		column:   column,
		position: pos,
		tree:     btree.NewG(degree, lessEntry),
	}
}

func (ix *Index) Column() string { return ix.column }
func (ix *Index) Position() int  { return ix.position }

// Len returns the number of distinct keys.
func (ix *Index) Len() int { return ix.tree.Len() }

// Build clears the index and repopulates it from rows in position order.
func (ix *Index) Build(rows [][]record.Value) {
	ix.tree.Clear(false)
	for pos, row := range rows {
		if ix.position >= len(row) {
			continue
		}
		ix.add(pos, row[ix.position])
	}
}

// Insert records that the row at pos holds v. Only valid for rows appended at
// the end of the table, since it never shifts existing positions.
func (ix *Index) Insert(pos int, v record.Value) {
	ix.add(pos, v)
}

func (ix *Index) add(pos int, v record.Value) {
	probe := &entry{key: KeyOf(v)}
	if e, ok := ix.tree.Get(probe); ok {
		e.positions = append(e.positions, pos)
		return
	}
	probe.positions = []int{pos}
	ix.tree.ReplaceOrInsert(probe)
}

// Lookup returns the positions whose key equals v, or false if none.
func (ix *Index) Lookup(v record.Value) ([]int, bool) {
	e, ok := ix.tree.Get(&entry{key: KeyOf(v)})
	if !ok {
		return nil, false
	}
	return append([]int(nil), e.positions...), true
}

// RangeLookup returns positions with low <= key <= high, in key order.
func (ix *Index) RangeLookup(low, high record.Value) []int {
	hi := KeyOf(high)
	var out []int
	ix.tree.AscendGreaterOrEqual(&entry{key: KeyOf(low)}, func(e *entry) bool {
		if hi.Less(e.key) {
			return false
		}
		out = append(out, e.positions...)
		return true
	})
	return out
}

// GreaterThan returns positions with key strictly greater than v.
func (ix *Index) GreaterThan(v record.Value) []int {
	k := KeyOf(v)
	var out []int
	ix.tree.AscendGreaterOrEqual(&entry{key: k}, func(e *entry) bool {
		if e.key.Compare(k) == 0 {
			return true
		}
		out = append(out, e.positions...)
		return true
	})
	return out
}

// LessThan returns positions with key strictly less than v.
func (ix *Index) LessThan(v record.Value) []int {
	var out []int
	ix.tree.AscendLessThan(&entry{key: KeyOf(v)}, func(e *entry) bool {
		out = append(out, e.positions...)
		return true
	})
	return out
}

// Entries walks every key in order. Used to compare a maintained index with a
// freshly built one.
func (ix *Index) Entries(fn func(k Key, positions []int) bool) {
	ix.tree.Ascend(func(e *entry) bool {
		return fn(e.key, append([]int(nil), e.positions...))
	})
}
