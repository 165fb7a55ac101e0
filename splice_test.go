package ordmap

import (
	"iter"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/ordmap/ordmap/pairs"
)

func pairsSeq[K comparable, V any](ps []pairs.Pair[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range ps {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func TestDrain(t *testing.T) {
	m := New[int, int]()
	for k := 0; k < 10; k++ {
		m.Insert(k, k*10)
	}

	removed := m.Drain(2, 5)
	assert.Equal(t, 3, len(removed))
	for i, p := range removed {
		assert.Equal(t, i+2, p.Key)
		assert.Equal(t, (i+2)*10, p.Value)
	}

	assert.DeepEqual(t, []int{0, 1, 5, 6, 7, 8, 9}, keysOf(m))
	for i, k := range keysOf(m) {
		pos, ok := m.GetIndexOf(k)
		assert.That(t, ok)
		assert.Equal(t, i, pos)
	}

	assert.Equal(t, 0, len(m.Drain(3, 3)))
	assert.Equal(t, 7, m.Len())
}

func TestSplice(t *testing.T) {
	m := New[int, rune]()
	m.Insert(0, '_')
	m.Insert(1, 'a')
	m.Insert(2, 'b')
	m.Insert(3, 'c')
	m.Insert(4, 'd')

	repl := []pairs.Pair[int, rune]{
		{Key: 5, Value: 'E'},
		{Key: 4, Value: 'D'},
		{Key: 3, Value: 'C'},
		{Key: 2, Value: 'B'},
		{Key: 1, Value: 'A'},
	}
	removed := m.Splice(2, 4, pairsSeq(repl))

	assert.Equal(t, 2, len(removed))
	assert.Equal(t, 2, removed[0].Key)
	assert.Equal(t, 'b', removed[0].Value)
	assert.Equal(t, 3, removed[1].Key)
	assert.Equal(t, 'c', removed[1].Value)

	assert.DeepEqual(t, []int{0, 1, 5, 3, 2, 4}, keysOf(m))
	want := []rune{'_', 'A', 'E', 'C', 'B', 'D'}
	i := 0
	for _, v := range m.All() {
		assert.Equal(t, want[i], v)
		i++
	}

	for j, k := range keysOf(m) {
		pos, ok := m.GetIndexOf(k)
		assert.That(t, ok)
		assert.Equal(t, j, pos)
	}
}

func TestRetain(t *testing.T) {
	m := New[int, int]()
	for k := 0; k < 100; k++ {
		m.Insert(k, k)
	}

	m.Retain(func(k int, v *int) bool {
		*v *= 2
		return k%3 == 0
	})

	assert.Equal(t, 34, m.Len())
	i := 0
	for k, v := range m.All() {
		assert.Equal(t, i*3, k)
		assert.Equal(t, i*3*2, v)
		pos, ok := m.GetIndexOf(k)
		assert.That(t, ok)
		assert.Equal(t, i, pos)
		i++
	}
}

func TestRetainAll(t *testing.T) {
	m := New[int, int]()
	for k := 0; k < 10; k++ {
		m.Insert(k, k)
	}
	m.Retain(func(int, *int) bool { return true })
	assert.Equal(t, 10, m.Len())

	m.Retain(func(int, *int) bool { return false })
	assert.Equal(t, 0, m.Len())
}

func TestSplitOff(t *testing.T) {
	m := New[int, int]()
	for k := 0; k < 10; k++ {
		m.Insert(k, k)
	}

	tail := m.SplitOff(6)
	assert.DeepEqual(t, []int{0, 1, 2, 3, 4, 5}, keysOf(m))
	assert.DeepEqual(t, []int{6, 7, 8, 9}, keysOf(tail))

	for _, k := range []int{6, 7, 8, 9} {
		assert.That(t, !m.Contains(k))
		v, ok := tail.Get(k)
		assert.That(t, ok)
		assert.Equal(t, k, v)
	}
}

// TestSpliceRandom cross-checks Splice against Drain plus sequential
// inserts on an independently built map.
func TestSpliceRandom(t *testing.T) {
	rng := mwc.New(17, 19)

	for round := 0; round < 200; round++ {
		m := New[uint64, uint64]()
		n := int(rng.Uint32n(40))
		for i := 0; i < n; i++ {
			m.Insert(rng.Uint64n(64), uint64(i))
		}

		i := 0
		j := 0
		if l := m.Len(); l > 0 {
			i = int(rng.Uint32n(uint32(l + 1)))
			j = i + int(rng.Uint32n(uint32(l-i+1)))
		}

		var repl []pairs.Pair[uint64, uint64]
		for r := int(rng.Uint32n(10)); r > 0; r-- {
			repl = append(repl, pairs.Pair[uint64, uint64]{Key: rng.Uint64n(64), Value: rng.Uint64()})
		}

		// model: drain, then insert new keys at the gap one by one
		model := Collect(m.All())
		model.Drain(i, j)
		gap := i
		for _, p := range repl {
			if model.Contains(p.Key) {
				model.Insert(p.Key, p.Value)
			} else {
				model.ShiftInsert(gap, p.Key, p.Value)
				gap++
			}
		}

		m.Splice(i, j, pairsSeq(repl))
		assert.That(t, Equal(m, model))
	}
}
