package ordmap

import (
	"cmp"
	"slices"

	"github.com/ordmap/ordmap/hashidx"
	"github.com/ordmap/ordmap/pairs"
)

// ShiftInsert inserts k at position pos. If k already exists elsewhere
// its value is replaced and the entry relocated to pos, shifting the
// entries between; otherwise a new entry lands at pos and everything
// after shifts forward. Panics if pos > Len, or if pos == Len and the
// key already exists (there is no position Len to move to).
func (t *T[K, V]) ShiftInsert(pos int, k K, v V) (old V, existed bool) {
	if uint(pos) > uint(t.ps.Len()) {
		panic("ordmap: index out of range")
	}
	h := t.hash(k)
	if cur, ok := t.findHash(h, k); ok {
		p := t.ps.Ptr(cur)
		old, p.Value = p.Value, v
		t.MoveIndex(cur, pos)
		return old, true
	}
	t.shiftInsertNew(pos, h, k, v)
	return old, false
}

// shiftInsertNew commits a new entry at pos. The entry stays out of the
// index until the tail has shifted, and the tail shifts in descending
// order, so no two slots ever record the same position.
func (t *T[K, V]) shiftInsertNew(pos int, hash uint64, k K, v V) {
	if uint64(t.ps.Len()) > hashidx.MaxPos {
		panic("ordmap: length exceeds addressable index space")
	}
	last := t.ps.Push(pairs.Pair[K, V]{Hash: hash, Key: k, Value: v})
	for i := last - 1; i >= pos; i-- {
		t.idx.UpdatePos(t.ps.Ptr(i).Hash, uint32(i), uint32(i+1))
	}
	t.ps.MoveBetween(last, pos)
	t.idx.Insert(hash, uint32(pos))
}

// InsertSorted inserts k into a map whose keys are already sorted
// ascending, keeping them sorted. Present keys have their value
// replaced in place. If the keys are not actually sorted the entry
// still lands at some valid position and no invariant breaks.
func InsertSorted[K cmp.Ordered, V any](t *T[K, V], k K, v V) (old V, existed bool) {
	return t.InsertSortedFunc(cmp.Compare[K], k, v)
}

// InsertSortedFunc is InsertSorted under an explicit key ordering. The
// ordering must agree with the map's current key order; that is the
// caller's responsibility and is not re-checked.
func (t *T[K, V]) InsertSortedFunc(compare func(a, b K) int, k K, v V) (old V, existed bool) {
	h := t.hash(k)
	if cur, ok := t.findHash(h, k); ok {
		p := t.ps.Ptr(cur)
		old, p.Value = p.Value, v
		return old, true
	}
	pos := t.PartitionPoint(func(ek K, _ V) bool { return compare(ek, k) < 0 })
	t.shiftInsertNew(pos, h, k, v)
	return old, false
}

// MoveIndex relocates the entry at from to position to, shifting the
// entries between by one. Panics if either index is out of range.
func (t *T[K, V]) MoveIndex(from, to int) {
	t.checkIndex(from)
	t.checkIndex(to)
	if from == to {
		return
	}
	p := t.ps.Get(from)
	t.idx.Remove(p.Hash, uint32(from))
	if from < to {
		for i := from + 1; i <= to; i++ {
			t.idx.UpdatePos(t.ps.Ptr(i).Hash, uint32(i), uint32(i-1))
		}
	} else {
		for i := from - 1; i >= to; i-- {
			t.idx.UpdatePos(t.ps.Ptr(i).Hash, uint32(i), uint32(i+1))
		}
	}
	t.idx.Insert(p.Hash, uint32(to))
	t.ps.MoveBetween(from, to)
}

// SwapIndices exchanges the positions of two entries. Panics if either
// index is out of range.
func (t *T[K, V]) SwapIndices(a, b int) {
	t.checkIndex(a)
	t.checkIndex(b)
	if a == b {
		return
	}
	pa, pb := t.ps.Ptr(a), t.ps.Ptr(b)
	// With equal hashes the index records the same (hash, pos) set
	// either way around, so there is nothing to redirect.
	if pa.Hash != pb.Hash {
		t.idx.UpdatePos(pa.Hash, uint32(a), uint32(b))
		t.idx.UpdatePos(pb.Hash, uint32(b), uint32(a))
	}
	t.ps.Swap(a, b)
}

// Reverse flips the entry order.
func (t *T[K, V]) Reverse() {
	slices.Reverse(t.ps.Slice())
	t.reindex()
}

// SortBy reorders the entries by compare, stably. Nearly every position
// changes, so the index is rebuilt wholesale afterwards.
func (t *T[K, V]) SortBy(compare func(a, b pairs.Pair[K, V]) int) {
	slices.SortStableFunc(t.ps.Slice(), compare)
	t.reindex()
}

// SortUnstableBy is SortBy without the stability guarantee. Since keys
// are unique, the two differ only when compare reports ties.
func (t *T[K, V]) SortUnstableBy(compare func(a, b pairs.Pair[K, V]) int) {
	slices.SortFunc(t.ps.Slice(), compare)
	t.reindex()
}

// SortKeys sorts the entries by key ascending.
func SortKeys[K cmp.Ordered, V any](t *T[K, V]) {
	t.SortUnstableBy(func(a, b pairs.Pair[K, V]) int { return cmp.Compare(a.Key, b.Key) })
}

// SortByCachedKey sorts by a derived key computed once per entry.
func SortByCachedKey[K comparable, V any, O cmp.Ordered](t *T[K, V], key func(k K, v V) O) {
	s := t.ps.Slice()
	keys := make([]O, len(s))
	perm := make([]int, len(s))
	for i := range s {
		keys[i] = key(s[i].Key, s[i].Value)
		perm[i] = i
	}
	slices.SortFunc(perm, func(a, b int) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b) // unique keys; keep derived-key ties stable
	})
	out := make([]pairs.Pair[K, V], len(s))
	for i, p := range perm {
		out[i] = s[p]
	}
	copy(s, out)
	t.reindex()
}

// BinarySearchFunc locates the entry where compare reports zero,
// assuming compare is ascending over the current order. It reports the
// first position at which compare is >= 0; ok tells whether that
// position holds an exact match. If the assumption is violated the
// result is still a valid position, just not a meaningful one.
func (t *T[K, V]) BinarySearchFunc(compare func(k K, v V) int) (int, bool) {
	pos := t.PartitionPoint(func(k K, v V) bool { return compare(k, v) < 0 })
	if pos < t.ps.Len() {
		p := t.ps.Ptr(pos)
		return pos, compare(p.Key, p.Value) == 0
	}
	return pos, false
}

// BinarySearchKeys locates k by binary search over sorted keys.
func BinarySearchKeys[K cmp.Ordered, V any](t *T[K, V], k K) (int, bool) {
	return t.BinarySearchFunc(func(ek K, _ V) int { return cmp.Compare(ek, k) })
}

// PartitionPoint returns the position of the first entry for which pred
// is false, assuming pred is true for a prefix and false for the rest.
// O(log n).
func (t *T[K, V]) PartitionPoint(pred func(k K, v V) bool) int {
	lo, hi := 0, t.ps.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		p := t.ps.Ptr(mid)
		if pred(p.Key, p.Value) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
