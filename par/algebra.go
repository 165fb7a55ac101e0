package par

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/ordmap/ordmap/ordset"
)

// Parallel set algebra. Workers test membership over disjoint position
// ranges and record matches in per-chunk bitmaps; the bitmaps are then
// folded and walked in ascending position order on one goroutine, so
// the result order matches the sequential operations in ordset.

// selectPositions returns a bitmap of the positions of a whose key
// passes pred, evaluated across the pool.
func selectPositions[K comparable](p *ants.Pool, a *ordset.T[K], pred func(k K) bool) *roaring.Bitmap {
	s := a.Map().Pairs()
	var mu sync.Mutex
	acc := roaring.New()
	split(p, len(s), func(lo, hi int) {
		bm := roaring.New()
		for i := lo; i < hi; i++ {
			if pred(s[i].Key) {
				bm.Add(uint32(i))
			}
		}
		mu.Lock()
		acc.Or(bm)
		mu.Unlock()
	})
	return acc
}

// emit appends the members of a at the bitmap's positions, ascending.
func emit[K comparable](out, a *ordset.T[K], bm *roaring.Bitmap) {
	it := bm.Iterator()
	for it.HasNext() {
		k, _ := a.GetIndex(int(it.Next()))
		out.Insert(k)
	}
}

// Intersection returns the members of a that are also in b, in a's
// order. Membership tests run on the pool.
func Intersection[K comparable](p *ants.Pool, a, b *ordset.T[K]) *ordset.T[K] {
	out := ordset.NewHasher(a.Map().Hasher())
	emit(out, a, selectPositions(p, a, b.Contains))
	return out
}

// Difference returns the members of a not in b, in a's order.
func Difference[K comparable](p *ants.Pool, a, b *ordset.T[K]) *ordset.T[K] {
	out := ordset.NewHasher(a.Map().Hasher())
	emit(out, a, selectPositions(p, a, func(k K) bool { return !b.Contains(k) }))
	return out
}

// Union returns a's members in order, then b's members not in a, in
// b's order.
func Union[K comparable](p *ants.Pool, a, b *ordset.T[K]) *ordset.T[K] {
	out := ordset.NewHasher(a.Map().Hasher())
	out.Reserve(a.Len())
	for k := range a.All() {
		out.Insert(k)
	}
	emit(out, b, selectPositions(p, b, func(k K) bool { return !a.Contains(k) }))
	return out
}

// SymmetricDifference returns the members in exactly one of a and b:
// a's survivors first, then b's.
func SymmetricDifference[K comparable](p *ants.Pool, a, b *ordset.T[K]) *ordset.T[K] {
	out := Difference(p, a, b)
	emit(out, b, selectPositions(p, b, func(k K) bool { return !a.Contains(k) }))
	return out
}
