package ordmap

import "cmp"

// The comparison layer is order-sensitive throughout: two maps with the
// same contents in different orders are different. That is the point of
// this container versus a plain hash map, so there is deliberately no
// unordered equality here.

// Equal reports whether a and b hold pairwise-equal entries in the same
// order.
func Equal[K comparable, V comparable](a, b *T[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with an explicit value equality.
func EqualFunc[K comparable, V1, V2 any](a *T[K, V1], b *T[K, V2], eq func(V1, V2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, l := 0, a.Len(); i < l; i++ {
		pa, pb := a.ps.Ptr(i), b.ps.Ptr(i)
		if pa.Key != pb.Key || !eq(pa.Value, pb.Value) {
			return false
		}
	}
	return true
}

// Compare orders a and b lexicographically over their iteration
// sequences, comparing keys before values at each position.
func Compare[K cmp.Ordered, V cmp.Ordered](a, b *T[K, V]) int {
	return CompareFunc(a, b, cmp.Compare[K], cmp.Compare[V])
}

// CompareFunc is Compare with explicit key and value orderings.
func CompareFunc[K comparable, V any](a, b *T[K, V], cmpK func(K, K) int, cmpV func(V, V) int) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		pa, pb := a.ps.Ptr(i), b.ps.Ptr(i)
		if c := cmpK(pa.Key, pb.Key); c != 0 {
			return c
		}
		if c := cmpV(pa.Value, pb.Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

// Digest folds the length and every (key, value) in iteration order
// into a single order-sensitive hash. Key and value digests are taken
// explicitly so equal maps digest equally regardless of their private
// hasher seeds.
func Digest[K comparable, V any](t *T[K, V], keyDigest func(K) uint64, valueDigest func(V) uint64) uint64 {
	d := mix(uint64(t.Len()))
	for i, l := 0, t.Len(); i < l; i++ {
		p := t.ps.Ptr(i)
		d = mix(d ^ keyDigest(p.Key))
		d = mix(d ^ valueDigest(p.Value))
	}
	return d
}

// mix is a splitmix64 round.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
