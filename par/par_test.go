package par

import (
	"sync/atomic"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/ordmap/ordmap"
	"github.com/ordmap/ordmap/ordset"
	"github.com/ordmap/ordmap/pairs"
)

func pool(t testing.TB) *ants.Pool {
	p, err := ants.NewPool(8)
	assert.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func fill(n int, s0, s1 uint64) *ordmap.T[uint64, uint64] {
	rng := mwc.New(s0, s1)
	m := ordmap.New[uint64, uint64]()
	for m.Len() < n {
		k := rng.Uint64n(uint64(4 * n))
		m.Insert(k, k*3)
	}
	return m
}

func TestForEach(t *testing.T) {
	p := pool(t)
	m := fill(10000, 1, 1)

	var want uint64
	for k, v := range m.All() {
		want += k + v
	}

	var got atomic.Uint64
	var poses atomic.Uint64
	ForEach(p, m, func(pos int, k, v uint64) {
		got.Add(k + v)
		poses.Add(uint64(pos))
	})

	assert.Equal(t, want, got.Load())
	n := uint64(m.Len())
	assert.Equal(t, n*(n-1)/2, poses.Load())
}

func TestValues(t *testing.T) {
	p := pool(t)
	m := fill(10000, 2, 2)

	keys := ordmap.Collect(m.All())

	Values(p, m, func(k uint64, v *uint64) { *v = k + 1 })

	// order and lookups survive the mutation
	i := 0
	for k, v := range m.All() {
		assert.Equal(t, k+1, v)
		wk, _, ok := keys.GetIndex(i)
		assert.That(t, ok)
		assert.Equal(t, wk, k)
		i++
	}
	for k := range keys.All() {
		v, ok := m.Get(k)
		assert.That(t, ok)
		assert.Equal(t, k+1, v)
	}
}

func TestSortBy(t *testing.T) {
	p := pool(t)

	run := func(t *testing.T, n int) {
		m := fill(n, 3, uint64(n))
		seq := ordmap.Collect(m.All())

		cmp := func(a, b pairs.Pair[uint64, uint64]) int {
			switch {
			case a.Key < b.Key:
				return -1
			case a.Key > b.Key:
				return 1
			}
			return 0
		}

		SortBy(p, m, cmp)
		seq.SortBy(cmp)

		assert.That(t, ordmap.Equal(m, seq))
		for k := range m.All() {
			pos, ok := m.GetIndexOf(k)
			assert.That(t, ok)
			gk, _, _ := m.GetIndex(pos)
			assert.Equal(t, k, gk)
		}
	}

	t.Run("small", func(t *testing.T) { run(t, 10) })
	t.Run("odd", func(t *testing.T) { run(t, 777) })
	t.Run("large", func(t *testing.T) { run(t, 50000) })
}

func TestSortByStable(t *testing.T) {
	p := pool(t)

	m := ordmap.New[int, int]()
	for i := 0; i < 10000; i++ {
		m.Insert(i, i%7)
	}

	SortBy(p, m, func(a, b pairs.Pair[int, int]) int { return a.Value - b.Value })

	prev := pairs.Pair[int, int]{Value: -1}
	for k, v := range m.All() {
		if v == prev.Value {
			assert.That(t, k > prev.Key)
		} else {
			assert.That(t, v > prev.Value)
		}
		prev = pairs.Pair[int, int]{Key: k, Value: v}
	}
}

func TestAlgebra(t *testing.T) {
	p := pool(t)
	rng := mwc.New(4, 4)

	a := ordset.New[uint64]()
	b := ordset.New[uint64]()
	for i := 0; i < 20000; i++ {
		a.Insert(rng.Uint64n(30000))
		b.Insert(rng.Uint64n(30000))
	}

	assert.That(t, ordset.Equal(Union(p, a, b), ordset.Union(a, b)))
	assert.That(t, ordset.Equal(Intersection(p, a, b), ordset.Intersection(a, b)))
	assert.That(t, ordset.Equal(Difference(p, a, b), ordset.Difference(a, b)))
	assert.That(t, ordset.Equal(SymmetricDifference(p, a, b), ordset.SymmetricDifference(a, b)))
}

func TestNilPoolInline(t *testing.T) {
	m := fill(500, 5, 5)

	var sum uint64
	ForEach(nil, m, func(pos int, k, v uint64) { sum += k })
	var want uint64
	for k := range m.All() {
		want += k
	}
	assert.Equal(t, want, sum)

	SortBy(nil, m, func(a, b pairs.Pair[uint64, uint64]) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	var prev uint64
	first := true
	for k := range m.All() {
		if !first {
			assert.That(t, k > prev)
		}
		prev, first = k, false
	}
}
