// Package hashidx is an open-addressing hash table that maps 64-bit key
// hashes to positions in a dense entry store. Slots carry only (hash,
// position); the keys themselves live in the store, so relocating an
// entry means updating one slot here rather than moving any payload.
//
// Equality checks are delegated to the caller through an eq callback
// receiving a candidate position, since only the caller can reach the
// key stored there.
package hashidx

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/zeebo/errs/v2"
)

const (
	maxLoadFactor = 0.8

	// MaxPos is the largest storable position.
	MaxPos = math.MaxUint32 - 1
)

func np2(x uint64) uint64  { return 1 << (uint(bits.Len64(x-1)) % 64) }
func log2(x uint64) uint64 { return uint64(bits.Len64(x)-1) % 64 }

// slot holds the entry's hash and its position biased by one, so the
// zero value means empty.
type slot struct {
	hash uint64
	ref  uint32
}

func (s slot) empty() bool { return s.ref == 0 }
func (s slot) pos() uint32 { return s.ref - 1 }

type T struct {
	_ [0]func() // no equality

	slots []slot
	mask  uint64
	shift uint64
	eles  int
	full  int
}

func (t *T) Len() int { return t.eles }

// Cap is the number of entries insertable before the table grows.
func (t *T) Cap() int { return t.full }

func (t *T) Load() float64 {
	if len(t.slots) == 0 {
		return 0
	}
	return float64(t.eles) / float64(t.mask+1)
}

func (t *T) Size() uint64 {
	return 0 +
		/* slots */ 24 + uint64(unsafe.Sizeof(slot{}))*uint64(len(t.slots)) +
		/* mask  */ 8 +
		/* shift */ 8 +
		/* eles  */ 8 +
		/* full  */ 8 +
		0
}

func (t *T) index(hash uint64) uint64 {
	return (11400714819323198485 * hash) >> (t.shift % 64)
}

// dist is how far the occupied slot at i sits from its ideal slot.
func (t *T) dist(i uint64) uint64 {
	return (i - t.index(t.slots[i].hash)) & t.mask
}

// Find returns the position recorded for hash whose entry satisfies eq.
func (t *T) Find(hash uint64, eq func(pos uint32) bool) (uint32, bool) {
	if t.eles == 0 {
		return 0, false
	}
	for i := t.index(hash); ; i = (i + 1) & t.mask {
		s := t.slots[i]
		if s.empty() {
			return 0, false
		}
		if s.hash == hash && eq(s.pos()) {
			return s.pos(), true
		}
	}
}

// InsertIfAbsent records hash -> pos unless an entry satisfying eq is
// already present, in which case it returns that entry's position and
// true. The table may grow before probing, never after.
func (t *T) InsertIfAbsent(hash uint64, pos uint32, eq func(pos uint32) bool) (uint32, bool) {
	if t.isFull() {
		t.grow(0)
	}
	for i := t.index(hash); ; i = (i + 1) & t.mask {
		s := t.slots[i]
		if s.empty() {
			t.slots[i] = slot{hash: hash, ref: pos + 1}
			t.eles++
			return pos, false
		}
		if s.hash == hash && eq(s.pos()) {
			return s.pos(), true
		}
	}
}

// Insert records hash -> pos. The caller guarantees no equal key is
// present; it is the rebuild path after sorts and reversals.
func (t *T) Insert(hash uint64, pos uint32) {
	if t.isFull() {
		t.grow(0)
	}
	for i := t.index(hash); ; i = (i + 1) & t.mask {
		if t.slots[i].empty() {
			t.slots[i] = slot{hash: hash, ref: pos + 1}
			t.eles++
			return
		}
	}
}

// Remove deletes the slot recording hash -> pos, which must exist.
// Deletion is by backward shift, so the table never holds tombstones.
// The scan runs to the next empty slot; an entry at k may fill the
// hole at j only when its ideal slot lies cyclically at or before j,
// meaning the probe that placed it walked through j. Entries probing
// from slots strictly inside (j, k] stay put.
func (t *T) Remove(hash uint64, pos uint32) {
	j := t.locate(hash, pos)
	for k := (j + 1) & t.mask; ; k = (k + 1) & t.mask {
		s := t.slots[k]
		if s.empty() {
			break
		}
		if t.dist(k) >= ((k - j) & t.mask) {
			t.slots[j] = s
			j = k
		}
	}
	t.slots[j] = slot{}
	t.eles--
}

// UpdatePos redirects the slot recording hash -> old to point at new.
// Every operation that relocates an entry in the store routes through
// here before it returns.
func (t *T) UpdatePos(hash uint64, old, new uint32) {
	t.slots[t.locate(hash, old)].ref = new + 1
}

func (t *T) locate(hash uint64, pos uint32) uint64 {
	for i := t.index(hash); ; i = (i + 1) & t.mask {
		s := t.slots[i]
		if s.empty() {
			panic("hashidx: no slot for position")
		}
		if s.hash == hash && s.pos() == pos {
			return i
		}
	}
}

// Clear empties the table but keeps its allocation.
func (t *T) Clear() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
	t.eles = 0
}

// Reserve grows the table until n entries fit without rehashing.
func (t *T) Reserve(n int) {
	if n > t.full {
		t.grow(n)
	}
}

// TryReserve is Reserve with an explicit failure for requests that
// exceed the addressable position space, instead of growing until the
// allocator gives out.
func (t *T) TryReserve(n int) error {
	if n < 0 || uint64(n) > MaxPos {
		return errs.Errorf("reserve of %d entries exceeds addressable index space", n)
	}
	t.Reserve(n)
	return nil
}

func (t *T) isFull() bool { return t.eles >= t.full }

func max(x, y uint64) uint64 {
	if x > y {
		return x
	}
	return y
}

func (t *T) grow(need int) {
	nslots := max(10, 2*t.mask)
	nslots = max(nslots, uint64(math.Ceil(float64(t.eles)/maxLoadFactor)))
	nslots = max(nslots, uint64(math.Ceil(float64(need)/maxLoadFactor)))
	nslots = max(128, np2(nslots))

	slots := t.slots
	t.shift = 64 - log2(nslots)
	t.slots = make([]slot, nslots)
	t.mask = nslots - 1
	t.eles = 0
	t.full = int(float64(nslots) * maxLoadFactor)

	for i := range slots {
		if s := slots[i]; !s.empty() {
			t.Insert(s.hash, s.pos())
		}
	}
}
