package ordmap

import (
	"iter"
	"slices"

	"github.com/ordmap/ordmap/pairs"
)

// Drain removes the entries in positions [i, j) and returns them,
// shifting the tail down so the remainder keeps its relative order.
// Panics if the range is out of bounds.
func (t *T[K, V]) Drain(i, j int) []pairs.Pair[K, V] {
	t.checkRange(i, j)
	removed := slices.Clone(t.ps.Slice()[i:j])
	if n := j - i; n > 0 {
		for p := i; p < j; p++ {
			t.idx.Remove(t.ps.Ptr(p).Hash, uint32(p))
		}
		for p, l := j, t.ps.Len(); p < l; p++ {
			t.idx.UpdatePos(t.ps.Ptr(p).Hash, uint32(p), uint32(p-n))
		}
		t.ps.RemoveRange(i, j)
	}
	return removed
}

// Splice removes positions [i, j), then walks repl: keys that survive
// elsewhere in the map only have their value replaced in place, while
// genuinely new keys are inserted in encounter order into the gap the
// removal left. The removed entries are returned; removal has happened
// by the time Splice returns regardless of what the caller does with
// them. Panics if the range is out of bounds.
func (t *T[K, V]) Splice(i, j int, repl iter.Seq2[K, V]) []pairs.Pair[K, V] {
	removed := t.Drain(i, j)
	gap := i
	for k, v := range repl {
		h := t.hash(k)
		if pos, ok := t.findHash(h, k); ok {
			t.ps.Ptr(pos).Value = v
		} else {
			t.shiftInsertNew(gap, h, k, v)
			gap++
		}
	}
	return removed
}

// Retain keeps only the entries keep reports true for, in their
// original relative order. One forward pass: a single large shift, not
// n separate shift-removals.
func (t *T[K, V]) Retain(keep func(k K, v *V) bool) {
	w := 0
	for r, l := 0, t.ps.Len(); r < l; r++ {
		p := t.ps.Ptr(r)
		if keep(p.Key, &p.Value) {
			if w != r {
				t.idx.UpdatePos(p.Hash, uint32(r), uint32(w))
				*t.ps.Ptr(w) = *p
			}
			w++
		} else {
			t.idx.Remove(p.Hash, uint32(r))
		}
	}
	t.ps.Truncate(w)
}

// SplitOff removes the entries at position at and later and returns
// them as a new map sharing the same hasher. Panics if at > Len.
func (t *T[K, V]) SplitOff(at int) *T[K, V] {
	if uint(at) > uint(t.ps.Len()) {
		panic("ordmap: index out of range")
	}
	out := &T[K, V]{hasher: t.hash0()}
	out.Reserve(t.ps.Len() - at)
	for i, l := at, t.ps.Len(); i < l; i++ {
		p := t.ps.Get(i)
		out.idx.Insert(p.Hash, uint32(out.ps.Push(p)))
	}
	t.Truncate(at)
	return out
}
