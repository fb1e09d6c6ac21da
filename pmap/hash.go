package pmap

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// Hash is a key-hashing function. Implementations need not be
// cryptographically strong; pmap only uses the result modulo the
// current bucket count.
type Hash[K comparable] func(K) uint64

// FNVHash hashes the bytes toBytes returns for a key with the 64-bit
// FNV-1a algorithm. It is an option for callers who want no extra
// dependency in their own code path (pmap itself still pulls in xxhash
// for XXHashString); no constructor uses it implicitly.
func FNVHash[K comparable](toBytes func(K) []byte) Hash[K] {
	return func(k K) uint64 {
		h := fnv.New64a()
		h.Write(toBytes(k))
		return h.Sum64()
	}
}

// XXHashString returns a Hash for string keys using xxhash, the same
// hashing library the teacher's Redis client pulls in transitively
// (github.com/cespare/xxhash/v2) and a faster default than FNV for
// larger keys.
func XXHashString() Hash[string] {
	return func(k string) uint64 {
		return xxhash.Sum64String(k)
	}
}

