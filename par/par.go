// Package par runs read-only and disjoint-value operations over the
// dense positions of an ordered map on a worker pool. Workers never
// touch the hash index, only positions; any operation that reorders
// entries finishes with a single-threaded index rebuild before
// returning. The caller must hold the container exclusively for the
// duration, exactly as with any other mutation.
package par

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ordmap/ordmap"
)

// parallel cost floor: below this many entries the pool overhead wins.
const minChunk = 64

// split runs fn over [0, n) in chunks submitted to p. A nil pool, a
// small n, or a failed submit all degrade to running inline.
func split(p *ants.Pool, n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := 0
	if p != nil {
		workers = p.Cap()
	}
	if workers < 2 || n < 2*minChunk {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			fn(lo, hi)
		}
		if err := p.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
}

// ForEach calls fn for every entry, partitioned across the pool.
// fn must not mutate the map.
func ForEach[K comparable, V any](p *ants.Pool, m *ordmap.T[K, V], fn func(pos int, k K, v V)) {
	s := m.Pairs()
	split(p, len(s), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i, s[i].Key, s[i].Value)
		}
	})
}

// Values calls fn with a pointer to every value, partitioned across
// the pool. Workers mutate disjoint values only; keys and order are
// untouched, so the index stays valid without a rebuild.
func Values[K comparable, V any](p *ants.Pool, m *ordmap.T[K, V], fn func(k K, v *V)) {
	s := m.Pairs()
	split(p, len(s), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(s[i].Key, &s[i].Value)
		}
	})
}
