// Package rwutils is a little-endian binary codec with sticky errors.
// Writers never fail; readers record the first short read and return
// zero values afterward.
package rwutils

import (
	"encoding/binary"

	"github.com/zeebo/errs/v2"
)

var le = binary.LittleEndian

// RW is implemented by types that know how to serialize themselves.
type RW interface {
	AppendTo(w *W)
	ReadFrom(r *R)
}

// RWPtr constrains a pointer to X that implements RW. It lets generic
// serializers take value types and call through their pointer methods.
type RWPtr[X any] interface {
	*X
	RW
}

type W struct {
	buf []byte
}

func (w *W) Init(buf []byte) { w.buf = buf[:0] }

// Done returns everything appended since Init.
func (w *W) Done() []byte { return w.buf }

func (w *W) Uint8(x uint8) { w.buf = append(w.buf, x) }

func (w *W) Uint32(x uint32) {
	w.buf = append(w.buf, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
}

func (w *W) Uint64(x uint64) {
	w.buf = append(w.buf,
		byte(x), byte(x>>8), byte(x>>16), byte(x>>24),
		byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56),
	)
}

func (w *W) Varint(x uint64) {
	for x >= 0x80 {
		w.buf = append(w.buf, byte(x)|0x80)
		x >>= 7
	}
	w.buf = append(w.buf, byte(x))
}

func (w *W) Bytes(buf []byte) { w.buf = append(w.buf, buf...) }

func (w *W) String(s string) {
	w.Varint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

type R struct {
	buf []byte
	err error
}

func (r *R) Init(buf []byte) { *r = R{buf: buf} }

// Done returns the unconsumed suffix and the first error encountered.
func (r *R) Done() ([]byte, error) { return r.buf, r.err }

func (r *R) Uint8() (x uint8) {
	if r.err == nil {
		if len(r.buf) >= 1 {
			x = r.buf[0]
			r.buf = r.buf[1:]
		} else {
			r.bad(1)
		}
	}
	return
}

func (r *R) Uint32() (x uint32) {
	if r.err == nil {
		if len(r.buf) >= 4 {
			x = le.Uint32(r.buf)
			r.buf = r.buf[4:]
		} else {
			r.bad(4)
		}
	}
	return
}

func (r *R) Uint64() (x uint64) {
	if r.err == nil {
		if len(r.buf) >= 8 {
			x = le.Uint64(r.buf)
			r.buf = r.buf[8:]
		} else {
			r.bad(8)
		}
	}
	return
}

func (r *R) Varint() (x uint64) {
	if r.err != nil {
		return 0
	}
	for i, sh := 0, 0; i < len(r.buf) && i < 10; i, sh = i+1, sh+7 {
		b := r.buf[i]
		x |= uint64(b&0x7f) << (uint(sh) % 64)
		if b < 0x80 {
			r.buf = r.buf[i+1:]
			return x
		}
	}
	r.bad(1)
	return 0
}

func (r *R) Bytes(n int) (x []byte) {
	if r.err == nil {
		if n >= 0 && len(r.buf) >= n {
			x = r.buf[:n:n]
			r.buf = r.buf[n:]
		} else {
			r.bad(n)
		}
	}
	return
}

func (r *R) String() string {
	n := r.Varint()
	if n > uint64(len(r.buf)) {
		r.bad(len(r.buf) + 1)
		return ""
	}
	return string(r.Bytes(int(n)))
}

func (r *R) bad(n int) {
	r.err = errs.Errorf("short buffer: needed %d bytes", n)
	r.buf = nil
}

// U64 is a serializable uint64, mostly useful in tests.
type U64 uint64

func (u U64) AppendTo(w *W)  { w.Uint64(uint64(u)) }
func (u *U64) ReadFrom(r *R) { *u = U64(r.Uint64()) }

// Str is a serializable string.
type Str string

func (s Str) AppendTo(w *W)  { w.String(string(s)) }
func (s *Str) ReadFrom(r *R) { *s = Str(r.String()) }
