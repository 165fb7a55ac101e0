// Package pairs is a dense, order-preserving store of key/value pairs
// addressed by compact positions 0..Len. It knows nothing about hashing;
// the owning container keeps its hash index in step with every move.
package pairs

import "unsafe"

// Pair is a single entry. Hash caches the key's hash under the owning
// container's hasher so relocation and index rebuilds never re-hash.
type Pair[K comparable, V any] struct {
	Hash  uint64
	Key   K
	Value V
}

type T[K comparable, V any] struct {
	_ [0]func() // no equality

	list []Pair[K, V]
}

func (t *T[K, V]) Len() int { return len(t.list) }
func (t *T[K, V]) Cap() int { return cap(t.list) }

func (t *T[K, V]) Size() uint64 {
	return 24 + uint64(unsafe.Sizeof(Pair[K, V]{}))*uint64(len(t.list))
}

// Slice exposes the live entries. Callers must not grow or shrink it.
func (t *T[K, V]) Slice() []Pair[K, V] { return t.list }

func (t *T[K, V]) Get(pos int) Pair[K, V] { return t.list[pos] }

// Ptr returns a pointer to the entry at pos, valid until the next
// operation that grows or shrinks the store.
func (t *T[K, V]) Ptr(pos int) *Pair[K, V] { return &t.list[pos] }

// Push appends and returns the new entry's position.
func (t *T[K, V]) Push(p Pair[K, V]) int {
	t.list = append(t.list, p)
	return len(t.list) - 1
}

// RemoveShift removes the entry at pos and shifts every following entry
// one position toward the front. O(len-pos); preserves relative order.
func (t *T[K, V]) RemoveShift(pos int) Pair[K, V] {
	p := t.list[pos]
	copy(t.list[pos:], t.list[pos+1:])
	t.shrink(1)
	return p
}

// RemoveSwap removes the entry at pos by moving the last entry into its
// place. O(1); perturbs the order of exactly the formerly-last entry.
func (t *T[K, V]) RemoveSwap(pos int) Pair[K, V] {
	p := t.list[pos]
	last := len(t.list) - 1
	t.list[pos] = t.list[last]
	t.shrink(1)
	return p
}

// RemoveRange removes positions [i, j) in one shift of the tail.
func (t *T[K, V]) RemoveRange(i, j int) {
	copy(t.list[i:], t.list[j:])
	t.shrink(j - i)
}

// Truncate drops every entry at position n or later.
func (t *T[K, V]) Truncate(n int) {
	if n < len(t.list) {
		t.shrink(len(t.list) - n)
	}
}

func (t *T[K, V]) Swap(i, j int) {
	t.list[i], t.list[j] = t.list[j], t.list[i]
}

// MoveBetween rotates the range between from and to by one so the entry
// at from ends up at to, shifting everything strictly between by one
// position. O(|to-from|).
func (t *T[K, V]) MoveBetween(from, to int) {
	p := t.list[from]
	if from < to {
		copy(t.list[from:to], t.list[from+1:to+1])
	} else {
		copy(t.list[to+1:from+1], t.list[to:from])
	}
	t.list[to] = p
}

func (t *T[K, V]) Clear() { t.shrink(len(t.list)) }

func (t *T[K, V]) Reserve(n int) {
	if n > cap(t.list)-len(t.list) {
		nl := make([]Pair[K, V], len(t.list), len(t.list)+n)
		copy(nl, t.list)
		t.list = nl
	}
}

// shrink zeroes the dropped tail so freed keys and values do not pin
// referenced memory.
func (t *T[K, V]) shrink(n int) {
	var zero Pair[K, V]
	l := t.list
	for i := len(l) - n; i < len(l); i++ {
		l[i] = zero
	}
	t.list = l[:len(l)-n]
}
