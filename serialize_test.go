package ordmap

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/ordmap/ordmap/rwutils"
)

func TestSerializeRoundTrip(t *testing.T) {
	m := New[rwutils.U64, rwutils.Str]()
	rng := mwc.New(2, 4)
	for i := 0; i < 1000; i++ {
		m.Insert(rwutils.U64(rng.Uint64n(700)), rwutils.Str("v"))
	}

	var w rwutils.W
	w.Init(nil)
	AppendTo[rwutils.U64, rwutils.Str](m, &w)
	w.Uint8(1)
	w.Uint8(2)
	w.Uint8(3)

	var r rwutils.R
	r.Init(w.Done())

	m2 := New[rwutils.U64, rwutils.Str]()
	ReadFrom[rwutils.U64, rwutils.Str](m2, &r)

	rem, err := r.Done()
	assert.NoError(t, err)
	assert.DeepEqual(t, []byte{1, 2, 3}, rem)

	assert.That(t, Equal(m, m2))
}

func TestSerializeShortBuffer(t *testing.T) {
	m := New[rwutils.U64, rwutils.U64]()
	m.Insert(1, 2)
	m.Insert(3, 4)

	var w rwutils.W
	w.Init(nil)
	AppendTo[rwutils.U64, rwutils.U64](m, &w)
	buf := w.Done()

	var r rwutils.R
	r.Init(buf[:len(buf)-4])

	m2 := New[rwutils.U64, rwutils.U64]()
	ReadFrom[rwutils.U64, rwutils.U64](m2, &r)

	_, err := r.Done()
	assert.Error(t, err)
	// only fully decoded pairs were inserted
	assert.Equal(t, 1, m2.Len())
}

func TestSerializeDuplicatesInStream(t *testing.T) {
	var w rwutils.W
	w.Init(nil)
	w.Varint(3)
	for _, kv := range [][2]uint64{{7, 1}, {9, 2}, {7, 3}} {
		w.Uint64(kv[0])
		w.Uint64(kv[1])
	}

	var r rwutils.R
	r.Init(w.Done())

	m := New[rwutils.U64, rwutils.U64]()
	ReadFrom[rwutils.U64, rwutils.U64](m, &r)

	_, err := r.Done()
	assert.NoError(t, err)

	// later duplicate wins the value, first occurrence keeps position
	assert.Equal(t, 2, m.Len())
	pos, ok := m.GetIndexOf(7)
	assert.That(t, ok)
	assert.Equal(t, 0, pos)
	v, _ := m.Get(7)
	assert.Equal(t, 3, v)
}
