package ordmap

import (
	"iter"

	"github.com/ordmap/ordmap/pairs"
)

// All yields the entries in order. The sequence is restartable: each
// range starts over from position 0. The map must not be mutated while
// a range is in progress.
func (t *T[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < t.ps.Len(); i++ {
			p := t.ps.Ptr(i)
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Backward yields the entries in reverse order.
func (t *T[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := t.ps.Len() - 1; i >= 0; i-- {
			p := t.ps.Ptr(i)
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func (t *T[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < t.ps.Len(); i++ {
			if !yield(t.ps.Ptr(i).Key) {
				return
			}
		}
	}
}

func (t *T[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < t.ps.Len(); i++ {
			if !yield(t.ps.Ptr(i).Value) {
				return
			}
		}
	}
}

// Collect builds a map from seq with standard insert semantics: a
// later duplicate key replaces the value but keeps the position of the
// first occurrence.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *T[K, V] {
	t := New[K, V]()
	for k, v := range seq {
		t.Insert(k, v)
	}
	return t
}

// FromPairs builds a map from ps in order, with standard insert
// semantics. Cached hashes in ps are ignored; keys hash under the new
// map's own hasher.
func FromPairs[K comparable, V any](ps []pairs.Pair[K, V]) *T[K, V] {
	t := WithCapacity[K, V](len(ps))
	for i := range ps {
		t.Insert(ps[i].Key, ps[i].Value)
	}
	return t
}
