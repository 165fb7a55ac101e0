package ordset

// Set algebra, order-sensitive in its results: every operation walks
// its receivers in iteration order, so the output order is determined
// by insertion history, not hashes. Results are new sets sharing the
// first operand's hasher.

// Union returns a's members in order, then b's members that are not in
// a, in b's order.
func Union[K comparable](a, b *T[K]) *T[K] {
	out := NewHasher(a.m.Hasher())
	out.Reserve(a.Len())
	for k := range a.All() {
		out.Insert(k)
	}
	for k := range b.All() {
		out.Insert(k)
	}
	return out
}

// Intersection returns the members of a that are also in b, in a's
// order.
func Intersection[K comparable](a, b *T[K]) *T[K] {
	out := NewHasher(a.m.Hasher())
	for k := range a.All() {
		if b.Contains(k) {
			out.Insert(k)
		}
	}
	return out
}

// Difference returns the members of a that are not in b, in a's order.
func Difference[K comparable](a, b *T[K]) *T[K] {
	out := NewHasher(a.m.Hasher())
	for k := range a.All() {
		if !b.Contains(k) {
			out.Insert(k)
		}
	}
	return out
}

// SymmetricDifference returns the members in exactly one of a and b:
// a's survivors in a's order, then b's in b's order.
func SymmetricDifference[K comparable](a, b *T[K]) *T[K] {
	out := NewHasher(a.m.Hasher())
	for k := range a.All() {
		if !b.Contains(k) {
			out.Insert(k)
		}
	}
	for k := range b.All() {
		if !a.Contains(k) {
			out.Insert(k)
		}
	}
	return out
}

// IsSubset reports whether every member of a is in b.
func IsSubset[K comparable](a, b *T[K]) bool {
	if a.Len() > b.Len() {
		return false
	}
	for k := range a.All() {
		if !b.Contains(k) {
			return false
		}
	}
	return true
}

// IsSuperset reports whether every member of b is in a.
func IsSuperset[K comparable](a, b *T[K]) bool { return IsSubset(b, a) }

// IsDisjoint reports whether a and b share no members.
func IsDisjoint[K comparable](a, b *T[K]) bool {
	x, y := a, b
	if x.Len() > y.Len() {
		x, y = y, x
	}
	for k := range x.All() {
		if y.Contains(k) {
			return false
		}
	}
	return true
}
