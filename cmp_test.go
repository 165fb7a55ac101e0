package ordmap

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestOrderSensitiveEquality(t *testing.T) {
	a := New[int, string]()
	a.Insert(1, "a")
	a.Insert(2, "b")

	b := New[int, string]()
	b.Insert(2, "b")
	b.Insert(1, "a")

	// same contents, different order: not equal
	assert.That(t, !Equal(a, b))

	b.MoveIndex(0, 1)
	assert.That(t, Equal(a, b))

	b.Insert(1, "x")
	assert.That(t, !Equal(a, b))
}

func TestEqualFunc(t *testing.T) {
	a := New[string, int]()
	a.Insert("x", 1)
	b := New[string, float64]()
	b.Insert("x", 1.0)

	assert.That(t, EqualFunc(a, b, func(i int, f float64) bool { return float64(i) == f }))
}

func TestCompare(t *testing.T) {
	a := New[int, int]()
	b := New[int, int]()

	assert.Equal(t, 0, Compare(a, b))

	a.Insert(1, 1)
	assert.Equal(t, 1, Compare(a, b))
	assert.Equal(t, -1, Compare(b, a))

	b.Insert(1, 1)
	assert.Equal(t, 0, Compare(a, b))

	a.Insert(2, 5)
	b.Insert(2, 6)
	assert.Equal(t, -1, Compare(a, b))

	// key order dominates value order
	c := New[int, int]()
	c.Insert(1, 1)
	c.Insert(3, 0)
	assert.Equal(t, -1, Compare(a, c))
}

func TestDigest(t *testing.T) {
	kd := func(k int) uint64 { return uint64(k) }
	vd := func(v string) uint64 { return uint64(len(v)) }

	a := New[int, string]()
	a.Insert(1, "x")
	a.Insert(2, "y")

	// equal maps digest equally even with distinct hasher seeds
	b := New[int, string]()
	b.Insert(1, "x")
	b.Insert(2, "y")
	assert.Equal(t, Digest(a, kd, vd), Digest(b, kd, vd))

	// order changes the digest
	b.MoveIndex(0, 1)
	assert.That(t, Digest(a, kd, vd) != Digest(b, kd, vd))

	// length is folded in
	e1 := New[int, string]()
	e2 := New[int, string]()
	e2.Insert(0, "")
	assert.That(t, Digest(e1, kd, vd) != Digest(e2, kd, vd))
}
