package ordset

import (
	"encoding/json"

	"github.com/sugawarayuuta/sonnet"
	"github.com/zeebo/errs/v2"

	"github.com/ordmap/ordmap/rwutils"
)

// AppendTo writes the set as varint(len) followed by the members in
// order.
func AppendTo[K comparable, PK rwutils.RWPtr[K]](t *T[K], w *rwutils.W) {
	w.Varint(uint64(t.Len()))
	for k := range t.All() {
		PK(&k).AppendTo(w)
	}
}

// ReadFrom inserts every member read from r; duplicates in the stream
// keep their first position. Check r.Done for decode errors.
func ReadFrom[K comparable, PK rwutils.RWPtr[K]](t *T[K], r *rwutils.R) {
	n := r.Varint()
	for i := uint64(0); i < n; i++ {
		var k K
		PK(&k).ReadFrom(r)
		if _, err := r.Done(); err != nil {
			return
		}
		t.Insert(k)
	}
}

// MarshalJSON encodes the set as a JSON array of members in order.
func (t *T[K]) MarshalJSON() ([]byte, error) {
	out := make([]K, 0, t.Len())
	for k := range t.All() {
		out = append(out, k)
	}
	b, err := sonnet.Marshal(out)
	return b, errs.Wrap(err)
}

// UnmarshalJSON decodes a JSON array of members, preserving order.
func (t *T[K]) UnmarshalJSON(data []byte) error {
	var rows []json.RawMessage
	if err := sonnet.Unmarshal(data, &rows); err != nil {
		return errs.Wrap(err)
	}
	for _, row := range rows {
		var k K
		if err := sonnet.Unmarshal(row, &k); err != nil {
			return errs.Wrap(err)
		}
		t.Insert(k)
	}
	return nil
}
