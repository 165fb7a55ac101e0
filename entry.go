package ordmap

// Entry is a cursor bound to one key's slot, occupied or vacant. It
// defers the final mutation until one of its consuming methods runs,
// so "look up, then decide" costs a single hash and probe.
//
// A cursor borrows the whole map: while one is live no other operation
// may run on the map, and at most one cursor should exist at a time.
// Any consuming method leaves the cursor bound to the result, so a
// vacant cursor becomes occupied after an insert and an occupied one
// becomes vacant after a remove.
type Entry[K comparable, V any] struct {
	t    *T[K, V]
	hash uint64
	key  K
	pos  int  // -1 when vacant
	raw  bool // vacant via EntryByHash, carries no key
}

// Entry returns a cursor for k, occupied if k is present and vacant
// otherwise.
func (t *T[K, V]) Entry(k K) *Entry[K, V] {
	h := t.hash(k)
	e := &Entry[K, V]{t: t, hash: h, key: k, pos: -1}
	if pos, ok := t.findHash(h, k); ok {
		e.pos = pos
	}
	return e
}

// EntryAt returns an occupied cursor for the entry at pos, discovered
// by position rather than key, or nil if pos is out of range.
func (t *T[K, V]) EntryAt(pos int) *Entry[K, V] {
	if uint(pos) >= uint(t.ps.Len()) {
		return nil
	}
	p := t.ps.Ptr(pos)
	return &Entry[K, V]{t: t, hash: p.Hash, key: p.Key, pos: pos}
}

// EntryByHash is the raw access path: it probes with a caller-supplied
// hash and equality, never touching the map's own hasher. It serves
// memoized hashes and search keys that are only hash- and
// equality-comparable. A vacant cursor from here carries no key;
// InsertKey is the only committing method that works on it, the rest
// panic. The hash passed in must be what the map's
// hasher would produce for the eventual key, or the entry is lost to
// future keyed lookups (a correctness hazard only, never a memory
// hazard).
func (t *T[K, V]) EntryByHash(hash uint64, eq func(k K) bool) *Entry[K, V] {
	e := &Entry[K, V]{t: t, hash: hash, pos: -1, raw: true}
	if pos, ok := t.idx.Find(hash, func(pos uint32) bool { return eq(t.ps.Ptr(int(pos)).Key) }); ok {
		e.pos = int(pos)
		e.key = t.ps.Ptr(int(pos)).Key
		e.raw = false
	}
	return e
}

func (e *Entry[K, V]) Exists() bool { return e.pos >= 0 }

// Key returns the key the cursor was anchored at.
func (e *Entry[K, V]) Key() K { return e.key }

// Index is the entry's position, or for a vacant cursor the position
// an appending insert would occupy.
func (e *Entry[K, V]) Index() int {
	if e.pos >= 0 {
		return e.pos
	}
	return e.t.ps.Len()
}

// Get returns a pointer to the value, or nil if vacant. The pointer is
// valid until the map grows or shrinks.
func (e *Entry[K, V]) Get() *V {
	if e.pos < 0 {
		return nil
	}
	return &e.t.ps.Ptr(e.pos).Value
}

// Set writes v, appending the entry first if the cursor is vacant.
func (e *Entry[K, V]) Set(v V) (old V, existed bool) {
	if e.pos >= 0 {
		p := e.t.ps.Ptr(e.pos)
		old, p.Value = p.Value, v
		return old, true
	}
	e.commit(e.t.ps.Len(), v)
	return old, false
}

// OrInsert returns the value pointer, inserting v at the end first if
// the cursor is vacant.
func (e *Entry[K, V]) OrInsert(v V) *V {
	if e.pos < 0 {
		e.commit(e.t.ps.Len(), v)
	}
	return &e.t.ps.Ptr(e.pos).Value
}

// OrInsertWith is OrInsert, computing the value only when needed.
func (e *Entry[K, V]) OrInsertWith(fn func() V) *V {
	if e.pos < 0 {
		e.commit(e.t.ps.Len(), fn())
	}
	return &e.t.ps.Ptr(e.pos).Value
}

// ShiftInsert commits a vacant cursor at an explicit position, shifting
// later entries forward. Panics if occupied or if pos > Len.
func (e *Entry[K, V]) ShiftInsert(pos int, v V) *V {
	if e.pos >= 0 {
		panic("ordmap: entry already exists")
	}
	if uint(pos) > uint(e.t.ps.Len()) {
		panic("ordmap: index out of range")
	}
	e.commit(pos, v)
	return &e.t.ps.Ptr(e.pos).Value
}

// InsertSortedFunc commits a vacant cursor at the position binary
// search finds under compare, assuming keys are already sorted that
// way. Panics if occupied.
func (e *Entry[K, V]) InsertSortedFunc(compare func(a, b K) int, v V) *V {
	if e.pos >= 0 {
		panic("ordmap: entry already exists")
	}
	pos := e.t.PartitionPoint(func(ek K, _ V) bool { return compare(ek, e.key) < 0 })
	e.commit(pos, v)
	return &e.t.ps.Ptr(e.pos).Value
}

// InsertKey commits a vacant raw cursor, supplying the key that the
// cursor's hash stands for. See EntryByHash for the hash contract.
func (e *Entry[K, V]) InsertKey(k K, v V) *V {
	if e.pos >= 0 {
		panic("ordmap: entry already exists")
	}
	e.key = k
	e.raw = false
	e.commit(e.t.ps.Len(), v)
	return &e.t.ps.Ptr(e.pos).Value
}

func (e *Entry[K, V]) commit(pos int, v V) {
	if e.raw {
		panic("ordmap: raw cursor has no key, use InsertKey")
	}
	e.t.shiftInsertNew(pos, e.hash, e.key, v)
	e.pos = pos
}

// ShiftRemove removes the entry preserving order; the cursor becomes
// vacant. Reports false if already vacant.
func (e *Entry[K, V]) ShiftRemove() (V, bool) {
	if e.pos < 0 {
		var zero V
		return zero, false
	}
	p := e.t.shiftRemoveAt(e.pos)
	e.pos = -1
	return p.Value, true
}

// SwapRemove removes the entry in O(1), moving the formerly-last entry
// into its position; the cursor becomes vacant.
func (e *Entry[K, V]) SwapRemove() (V, bool) {
	if e.pos < 0 {
		var zero V
		return zero, false
	}
	p := e.t.swapRemoveAt(e.pos)
	e.pos = -1
	return p.Value, true
}

// MoveTo relocates an occupied entry to pos, shifting the entries
// between. Panics if vacant or out of range.
func (e *Entry[K, V]) MoveTo(pos int) {
	if e.pos < 0 {
		panic("ordmap: entry does not exist")
	}
	e.t.MoveIndex(e.pos, pos)
	e.pos = pos
}

// KeyPtr is the mutable-key escape hatch. Mutating the key in any way
// that changes its hash or equality loses the entry for keyed lookups
// while it still occupies its position; nothing detects or repairs
// that. Panics if vacant.
func (e *Entry[K, V]) KeyPtr() *K {
	if e.pos < 0 {
		panic("ordmap: entry does not exist")
	}
	return &e.t.ps.Ptr(e.pos).Key
}
