package ordmap

import (
	"github.com/ordmap/ordmap/rwutils"
)

// AppendTo writes the map as varint(len) followed by the entries in
// order. The encoding is the ordered-sequence form: reading it back
// reproduces both contents and order.
func AppendTo[K comparable, V any, PK rwutils.RWPtr[K], PV rwutils.RWPtr[V]](t *T[K, V], w *rwutils.W) {
	w.Varint(uint64(t.Len()))
	for i, l := 0, t.Len(); i < l; i++ {
		p := t.ps.Ptr(i)
		PK(&p.Key).AppendTo(w)
		PV(&p.Value).AppendTo(w)
	}
}

// ReadFrom inserts every pair read from r into t with standard insert
// semantics, so a duplicate key in the stream replaces the value but
// keeps the first occurrence's position. Check r.Done for decode
// errors.
func ReadFrom[K comparable, V any, PK rwutils.RWPtr[K], PV rwutils.RWPtr[V]](t *T[K, V], r *rwutils.R) {
	n := r.Varint()
	for i := uint64(0); i < n; i++ {
		var k K
		var v V
		PK(&k).ReadFrom(r)
		PV(&v).ReadFrom(r)
		if _, err := r.Done(); err != nil {
			return
		}
		t.Insert(k, v)
	}
}
