package par

import (
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ordmap/ordmap"
	"github.com/ordmap/ordmap/pairs"
)

// SortBy reorders the map by compare using the pool: sorted runs are
// produced in parallel, merged bottom-up in parallel rounds, and then
// one goroutine rebuilds the hash index before SortBy returns. Ties
// break by prior position, so the sort is stable.
func SortBy[K comparable, V any](p *ants.Pool, m *ordmap.T[K, V], compare func(a, b pairs.Pair[K, V]) int) {
	s := m.Pairs()
	n := len(s)
	if n < 2 {
		return
	}

	// positions are uint32 everywhere in the engine; the permutation
	// matches so the full addressable space sorts correctly
	cmp := func(a, b uint32) int {
		if c := compare(s[a], s[b]); c != 0 {
			return c
		}
		if a < b {
			return -1
		}
		return 1
	}

	workers := 1
	if p != nil {
		workers = p.Cap()
	}
	runs := 1
	for runs < workers && n/(runs*2) >= minChunk {
		runs *= 2
	}

	cur := make([]uint32, n)
	for i := range cur {
		cur[i] = uint32(i)
	}

	bounds := make([]int, 0, runs+1)
	chunk := (n + runs - 1) / runs
	for lo := 0; lo <= n; lo += chunk {
		bounds = append(bounds, lo)
	}
	if bounds[len(bounds)-1] != n {
		bounds = append(bounds, n)
	}

	var wg sync.WaitGroup
	for bi := 0; bi+1 < len(bounds); bi++ {
		lo, hi := bounds[bi], bounds[bi+1]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slices.SortFunc(cur[lo:hi], cmp)
		}
		if p == nil || p.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()

	next := make([]uint32, n)
	for len(bounds) > 2 {
		nb := make([]int, 0, len(bounds)/2+1)
		var mg sync.WaitGroup
		for bi := 0; bi+2 < len(bounds); bi += 2 {
			lo, mid, hi := bounds[bi], bounds[bi+1], bounds[bi+2]
			nb = append(nb, lo)
			mg.Add(1)
			task := func() {
				defer mg.Done()
				mergeRuns(next[lo:hi], cur[lo:mid], cur[mid:hi], cmp)
			}
			if p == nil || p.Submit(task) != nil {
				task()
			}
		}
		if len(bounds)%2 == 0 {
			// odd run count: the last run has no partner this round
			lo, hi := bounds[len(bounds)-2], bounds[len(bounds)-1]
			nb = append(nb, lo)
			copy(next[lo:hi], cur[lo:hi])
		}
		nb = append(nb, n)
		mg.Wait()
		cur, next = next, cur
		bounds = nb
	}

	out := make([]pairs.Pair[K, V], n)
	for i, id := range cur {
		out[i] = s[id]
	}
	copy(s, out)
	m.Reindex()
}

// mergeRuns merges two sorted runs of positions into dst.
func mergeRuns(dst, a, b []uint32, cmp func(x, y uint32) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if cmp(a[i], b[j]) <= 0 {
			dst[k] = a[i]
			i++
		} else {
			dst[k] = b[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
