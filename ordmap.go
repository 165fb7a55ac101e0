// Package ordmap is a hash-keyed map whose iteration order is the
// sequence of insertions and removals, not a function of key hashes.
// Lookup and insert are O(1) average like a plain hash map, and entries
// are also addressable by their compact position 0..Len.
//
// The map is two structures kept in step under every mutation: an open
// addressing index from key hash to position (package hashidx) and a
// dense store of entries in order (package pairs). Removal comes in two
// disciplines, both first-class: ShiftRemove keeps the relative order
// of everything else at O(n) cost, SwapRemove is O(1) but moves the
// formerly-last entry into the hole.
//
// All mutation requires exclusive access; concurrent readers are fine
// as long as nothing mutates.
package ordmap

import (
	"github.com/ordmap/ordmap/hashidx"
	"github.com/ordmap/ordmap/hashof"
	"github.com/ordmap/ordmap/pairs"
)

// Pair is the stored entry type, re-exported from package pairs.
type Pair[K comparable, V any] = pairs.Pair[K, V]

type T[K comparable, V any] struct {
	_ [0]func() // no equality

	hasher hashof.Hasher[K]
	idx    hashidx.T
	ps     pairs.T[K, V]
}

// New returns a map using the default runtime hasher with a random
// per-instance seed.
func New[K comparable, V any]() *T[K, V] {
	return NewHasher[K, V](hashof.For[K]())
}

// NewHasher returns a map using h for every key hash. The hasher is
// fixed for the lifetime of the map.
func NewHasher[K comparable, V any](h hashof.Hasher[K]) *T[K, V] {
	return &T[K, V]{hasher: h}
}

// WithCapacity returns a map that holds n entries without growing.
func WithCapacity[K comparable, V any](n int) *T[K, V] {
	t := New[K, V]()
	t.Reserve(n)
	return t
}

func (t *T[K, V]) Len() int { return t.ps.Len() }

// Cap is a lower bound on how many entries fit before either
// substructure grows.
func (t *T[K, V]) Cap() int {
	if c := t.idx.Cap(); c < t.ps.Cap() {
		return c
	}
	return t.ps.Cap()
}

func (t *T[K, V]) Size() uint64 {
	return 0 +
		/* hasher */ 16 +
		/* idx    */ t.idx.Size() +
		/* ps     */ t.ps.Size() +
		0
}

// Hasher returns the hash strategy the map was constructed with.
func (t *T[K, V]) Hasher() hashof.Hasher[K] { return t.hash0() }

func (t *T[K, V]) hash0() hashof.Hasher[K] {
	if t.hasher == nil {
		t.hasher = hashof.For[K]()
	}
	return t.hasher
}

func (t *T[K, V]) hash(k K) uint64 { return t.hash0().Hash(k) }

func (t *T[K, V]) eq(k K) func(pos uint32) bool {
	return func(pos uint32) bool { return t.ps.Ptr(int(pos)).Key == k }
}

// findHash is the raw lookup: every keyed read routes through it.
func (t *T[K, V]) findHash(hash uint64, k K) (int, bool) {
	pos, ok := t.idx.Find(hash, t.eq(k))
	return int(pos), ok
}

// Insert adds k at the end, or replaces the value in place if k is
// already present, keeping its position. Reports the old value.
// One probe either way.
func (t *T[K, V]) Insert(k K, v V) (old V, existed bool) {
	h := t.hash(k)
	if uint64(t.ps.Len()) > hashidx.MaxPos {
		if pos, ok := t.findHash(h, k); ok {
			p := t.ps.Ptr(pos)
			old, p.Value = p.Value, v
			return old, true
		}
		panic("ordmap: length exceeds addressable index space")
	}
	pos, ok := t.idx.InsertIfAbsent(h, uint32(t.ps.Len()), t.eq(k))
	if ok {
		p := t.ps.Ptr(int(pos))
		old, p.Value = p.Value, v
		return old, true
	}
	t.ps.Push(pairs.Pair[K, V]{Hash: h, Key: k, Value: v})
	return old, false
}

func (t *T[K, V]) Contains(k K) bool {
	_, ok := t.GetIndexOf(k)
	return ok
}

func (t *T[K, V]) Get(k K) (V, bool) {
	if pos, ok := t.GetIndexOf(k); ok {
		return t.ps.Ptr(pos).Value, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to k's value, valid until the next growth or
// removal, or nil if absent.
func (t *T[K, V]) GetMut(k K) *V {
	if pos, ok := t.GetIndexOf(k); ok {
		return &t.ps.Ptr(pos).Value
	}
	return nil
}

// GetFull reports the position, key copy, and value of k.
func (t *T[K, V]) GetFull(k K) (pos int, v V, ok bool) {
	if pos, ok := t.GetIndexOf(k); ok {
		return pos, t.ps.Ptr(pos).Value, true
	}
	var zero V
	return 0, zero, false
}

// GetIndexOf reports the position k occupies.
func (t *T[K, V]) GetIndexOf(k K) (int, bool) {
	if t.ps.Len() == 0 {
		return 0, false
	}
	return t.findHash(t.hash(k), k)
}

// GetIndex returns the entry at pos, positional O(1) access.
func (t *T[K, V]) GetIndex(pos int) (k K, v V, ok bool) {
	if uint(pos) >= uint(t.ps.Len()) {
		return k, v, false
	}
	p := t.ps.Ptr(pos)
	return p.Key, p.Value, true
}

func (t *T[K, V]) First() (k K, v V, ok bool) { return t.GetIndex(0) }
func (t *T[K, V]) Last() (k K, v V, ok bool)  { return t.GetIndex(t.ps.Len() - 1) }

// ShiftRemove removes k preserving the relative order of every other
// entry. O(n) in the entries after k.
func (t *T[K, V]) ShiftRemove(k K) (V, bool) {
	if pos, ok := t.GetIndexOf(k); ok {
		return t.shiftRemoveAt(pos).Value, true
	}
	var zero V
	return zero, false
}

// SwapRemove removes k in O(1) by moving the last entry into its
// position; every other entry keeps its place.
func (t *T[K, V]) SwapRemove(k K) (V, bool) {
	if pos, ok := t.GetIndexOf(k); ok {
		return t.swapRemoveAt(pos).Value, true
	}
	var zero V
	return zero, false
}

// ShiftRemoveIndex removes the entry at pos, order preserving. Panics
// if pos is out of range.
func (t *T[K, V]) ShiftRemoveIndex(pos int) (K, V) {
	t.checkIndex(pos)
	p := t.shiftRemoveAt(pos)
	return p.Key, p.Value
}

// SwapRemoveIndex removes the entry at pos in O(1). Panics if pos is
// out of range.
func (t *T[K, V]) SwapRemoveIndex(pos int) (K, V) {
	t.checkIndex(pos)
	p := t.swapRemoveAt(pos)
	return p.Key, p.Value
}

// Pop removes and returns the last entry in O(1).
func (t *T[K, V]) Pop() (k K, v V, ok bool) {
	if t.ps.Len() == 0 {
		return k, v, false
	}
	p := t.swapRemoveAt(t.ps.Len() - 1)
	return p.Key, p.Value, true
}

func (t *T[K, V]) shiftRemoveAt(pos int) pairs.Pair[K, V] {
	p := t.ps.Get(pos)
	t.idx.Remove(p.Hash, uint32(pos))
	for i, l := pos+1, t.ps.Len(); i < l; i++ {
		t.idx.UpdatePos(t.ps.Ptr(i).Hash, uint32(i), uint32(i-1))
	}
	t.ps.RemoveShift(pos)
	return p
}

func (t *T[K, V]) swapRemoveAt(pos int) pairs.Pair[K, V] {
	p := t.ps.Get(pos)
	t.idx.Remove(p.Hash, uint32(pos))
	if last := t.ps.Len() - 1; pos != last {
		t.idx.UpdatePos(t.ps.Ptr(last).Hash, uint32(last), uint32(pos))
	}
	t.ps.RemoveSwap(pos)
	return p
}

// Truncate drops every entry at position n or later.
func (t *T[K, V]) Truncate(n int) {
	if n < 0 {
		panic("ordmap: index out of range")
	}
	for i, l := n, t.ps.Len(); i < l; i++ {
		p := t.ps.Ptr(i)
		t.idx.Remove(p.Hash, uint32(i))
	}
	t.ps.Truncate(n)
}

// Clear removes everything but keeps both allocations.
func (t *T[K, V]) Clear() {
	t.idx.Clear()
	t.ps.Clear()
}

// Reserve grows both substructures until n more entries fit without
// reallocation. Growth failure is fatal, as with any Go allocation.
func (t *T[K, V]) Reserve(n int) {
	t.idx.Reserve(t.ps.Len() + n)
	t.ps.Reserve(n)
}

// TryReserve is Reserve with an explicit error when the request exceeds
// the addressable index space, for callers that would rather back off
// than grow without bound.
func (t *T[K, V]) TryReserve(n int) error {
	if err := t.idx.TryReserve(t.ps.Len() + n); err != nil {
		return err
	}
	t.ps.Reserve(n)
	return nil
}

// ShrinkToFit rebuilds both substructures at the smallest capacity that
// holds the current entries.
func (t *T[K, V]) ShrinkToFit() {
	list := t.ps.Slice()
	t.ps = pairs.T[K, V]{}
	t.ps.Reserve(len(list))
	for _, p := range list {
		t.ps.Push(p)
	}
	t.idx = hashidx.T{}
	t.idx.Reserve(t.ps.Len())
	t.reindex()
}

// Pairs exposes the live entries in order. It is the read-only access
// path for bulk and data-parallel consumers: callers must not grow,
// shrink, or change keys, and any reordering must be followed by
// Reindex before the map is used again.
func (t *T[K, V]) Pairs() []pairs.Pair[K, V] { return t.ps.Slice() }

// Reindex rebuilds the hash index from the entry order. It is the
// commit step after any external reordering of Pairs.
func (t *T[K, V]) Reindex() { t.reindex() }

func (t *T[K, V]) reindex() {
	t.idx.Clear()
	t.idx.Reserve(t.ps.Len())
	for i, l := 0, t.ps.Len(); i < l; i++ {
		t.idx.Insert(t.ps.Ptr(i).Hash, uint32(i))
	}
}

func (t *T[K, V]) checkIndex(pos int) {
	if uint(pos) >= uint(t.ps.Len()) {
		panic("ordmap: index out of range")
	}
}

func (t *T[K, V]) checkRange(i, j int) {
	if i < 0 || j < i || j > t.ps.Len() {
		panic("ordmap: range out of bounds")
	}
}
