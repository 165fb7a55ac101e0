// Package hashof provides the hash strategies used by the ordered
// containers. A strategy is fixed per container instance at construction;
// there is no process-wide default that can be swapped at runtime.
package hashof

import (
	"unsafe"

	"github.com/zeebo/mwc"
	"github.com/zeebo/xxh3"
)

// Hasher computes the hash of a key. Implementations must be pure: the
// same key always hashes to the same value for the lifetime of the
// container that holds the Hasher.
type Hasher[K any] interface {
	Hash(k K) uint64
}

// F hashes any comparable type with the runtime's native hash function
// for that type, mixed with a per-instance seed. It is the default
// strategy for containers constructed without an explicit Hasher.
type F[K comparable] struct {
	seed uintptr
}

// For returns a randomly seeded F.
func For[K comparable]() F[K] {
	return F[K]{seed: uintptr(mwc.Rand().Uint64())}
}

// Seeded returns an F with a fixed seed, for reproducible layouts.
func Seeded[K comparable](seed uint64) F[K] {
	return F[K]{seed: uintptr(seed)}
}

func (f F[K]) Hash(k K) uint64 { return runtimeHash(f.seed, k) }

// Str hashes string keys with xxh3.
type Str struct{}

func (Str) Hash(k string) uint64 { return xxh3.HashString(k) }

// Bytes hashes byte-array-backed keys with xxh3.
type Bytes[K ~[]byte] struct{}

func (Bytes[K]) Hash(k K) uint64 { return xxh3.Hash(k) }

//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

// runtimeHash pulls the hash function out of the runtime's map type
// descriptor for K and applies it directly.
func runtimeHash[K comparable](seed uintptr, k K) uint64 {
	var m interface{} = map[K]struct{}(nil)
	hf := (*mh)(*(*unsafe.Pointer)(unsafe.Pointer(&m))).hf
	return uint64(hf(noescape(unsafe.Pointer(&k)), seed))
}

type mh struct {
	_  uintptr
	_  uintptr
	_  uint32
	_  uint8
	_  uint8
	_  uint8
	_  uint8
	_  func(unsafe.Pointer, unsafe.Pointer) bool
	_  *byte
	_  int32
	_  int32
	_  unsafe.Pointer
	_  unsafe.Pointer
	_  unsafe.Pointer
	hf func(unsafe.Pointer, uintptr) uintptr
}
