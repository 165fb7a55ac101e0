// Package ordset is the key-only projection of ordmap: an insertion
// ordered set with O(1) average membership and O(1) positional access.
// It is a thin layer over ordmap.T[K, struct{}], not a second engine.
package ordset

import (
	"iter"

	"github.com/ordmap/ordmap"
	"github.com/ordmap/ordmap/hashof"
)

type T[K comparable] struct {
	_ [0]func() // no equality

	m ordmap.T[K, struct{}]
}

func New[K comparable]() *T[K] { return &T[K]{} }

func NewHasher[K comparable](h hashof.Hasher[K]) *T[K] {
	return &T[K]{m: *ordmap.NewHasher[K, struct{}](h)}
}

func WithCapacity[K comparable](n int) *T[K] {
	t := New[K]()
	t.Reserve(n)
	return t
}

// Collect builds a set from seq in encounter order; duplicates keep
// their first position.
func Collect[K comparable](seq iter.Seq[K]) *T[K] {
	t := New[K]()
	for k := range seq {
		t.Insert(k)
	}
	return t
}

// Of builds a set from ks in order.
func Of[K comparable](ks ...K) *T[K] {
	t := WithCapacity[K](len(ks))
	for _, k := range ks {
		t.Insert(k)
	}
	return t
}

// Map exposes the underlying map for operations the projection does
// not re-export, such as entry cursors and splices.
func (t *T[K]) Map() *ordmap.T[K, struct{}] { return &t.m }

func (t *T[K]) Len() int     { return t.m.Len() }
func (t *T[K]) Cap() int     { return t.m.Cap() }
func (t *T[K]) Size() uint64 { return t.m.Size() }

// Insert appends k if absent. Reports whether k was newly added.
func (t *T[K]) Insert(k K) bool {
	_, existed := t.m.Insert(k, struct{}{})
	return !existed
}

// InsertFull reports k's position along with whether it was added.
func (t *T[K]) InsertFull(k K) (pos int, added bool) {
	if added := t.Insert(k); added {
		return t.m.Len() - 1, true
	}
	pos, _ = t.m.GetIndexOf(k)
	return pos, false
}

func (t *T[K]) Contains(k K) bool { return t.m.Contains(k) }

func (t *T[K]) GetIndexOf(k K) (int, bool) { return t.m.GetIndexOf(k) }

func (t *T[K]) GetIndex(pos int) (K, bool) {
	k, _, ok := t.m.GetIndex(pos)
	return k, ok
}

func (t *T[K]) First() (K, bool) { return t.GetIndex(0) }
func (t *T[K]) Last() (K, bool)  { return t.GetIndex(t.Len() - 1) }

// ShiftRemove removes k preserving the order of the rest. O(n).
func (t *T[K]) ShiftRemove(k K) bool {
	_, ok := t.m.ShiftRemove(k)
	return ok
}

// SwapRemove removes k in O(1), moving the last member into its place.
func (t *T[K]) SwapRemove(k K) bool {
	_, ok := t.m.SwapRemove(k)
	return ok
}

func (t *T[K]) ShiftRemoveIndex(pos int) K { k, _ := t.m.ShiftRemoveIndex(pos); return k }
func (t *T[K]) SwapRemoveIndex(pos int) K  { k, _ := t.m.SwapRemoveIndex(pos); return k }

func (t *T[K]) Pop() (K, bool) {
	k, _, ok := t.m.Pop()
	return k, ok
}

func (t *T[K]) Retain(keep func(k K) bool) {
	t.m.Retain(func(k K, _ *struct{}) bool { return keep(k) })
}

func (t *T[K]) MoveIndex(from, to int) { t.m.MoveIndex(from, to) }
func (t *T[K]) SwapIndices(a, b int)   { t.m.SwapIndices(a, b) }
func (t *T[K]) Reverse()               { t.m.Reverse() }
func (t *T[K]) Truncate(n int)         { t.m.Truncate(n) }
func (t *T[K]) Clear()                 { t.m.Clear() }
func (t *T[K]) Reserve(n int)          { t.m.Reserve(n) }
func (t *T[K]) TryReserve(n int) error { return t.m.TryReserve(n) }

// All yields the members in order; restartable.
func (t *T[K]) All() iter.Seq[K] { return t.m.Keys() }

func (t *T[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.m.Backward() {
			if !yield(k) {
				return
			}
		}
	}
}

// SortFunc sorts the members by compare.
func (t *T[K]) SortFunc(compare func(a, b K) int) {
	t.m.SortBy(func(a, b ordmap.Pair[K, struct{}]) int { return compare(a.Key, b.Key) })
}

// Equal reports order-sensitive equality: same members, same order.
func Equal[K comparable](a, b *T[K]) bool {
	return ordmap.EqualFunc(&a.m, &b.m, func(_, _ struct{}) bool { return true })
}

// Digest folds len and members in order into an order-sensitive hash.
func Digest[K comparable](t *T[K], keyDigest func(K) uint64) uint64 {
	return ordmap.Digest(&t.m, keyDigest, func(struct{}) uint64 { return 0 })
}
