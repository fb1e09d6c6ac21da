// Package pmap implements the persistent, confluently-undoable hash map
// of spec.md §4.4: a bucket table built directly on package vector
// (Vector[Vector[Pair[K,V]]]), rehashing by doubling whenever the load
// factor would exceed one half.
package pmap

import (
	"github.com/sarat-asymmetrica/pds/internal/perrors"
	"github.com/sarat-asymmetrica/pds/vector"
	"github.com/sarat-asymmetrica/pds/version"
)

// defaultInitialBuckets mirrors PersistentMap::DEFAULT_INITIAL_SIZE.
const defaultInitialBuckets = 256

// Pair is one key/value entry stored in a bucket.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an immutable, persistent hash map with undo/redo over its own
// mutation history, layered entirely on package vector: the bucket
// table is a Vector of Vectors, so Map inherits the vector's version
// tree and Undo/Redo wholesale rather than keeping its own.
//
// The zero Map is not usable. Construct one with New, NewSized or
// FromPairs.
type Map[K comparable, V any] struct {
	ctx     *version.Context
	hash    Hash[K]
	size    int
	buckets vector.Vector[vector.Vector[Pair[K, V]]]
	logger  perrors.Logger
}

// New returns an empty Map with the default bucket count (256).
func New[K comparable, V any](ctx *version.Context, hash Hash[K]) Map[K, V] {
	return NewSized[K, V](ctx, hash, defaultInitialBuckets)
}

// NewSized returns an empty Map with the given initial bucket count.
func NewSized[K comparable, V any](ctx *version.Context, hash Hash[K], initialBuckets int) Map[K, V] {
	empty := vector.New[Pair[K, V]](ctx)
	buckets := vector.WithCountValue(ctx, initialBuckets, empty)
	return Map[K, V]{ctx: ctx, hash: hash, size: 0, buckets: buckets, logger: perrors.Default(nil)}
}

// FromPairs returns a Map pre-populated with pairs, bucketed directly
// into initialBuckets buckets with no intermediate versions — mirroring
// the reference implementation's iterator-range constructor, which
// hashes every input once up front (insertToSequenceAsHash) instead of
// calling Set in a loop.
func FromPairs[K comparable, V any](ctx *version.Context, hash Hash[K], pairs []Pair[K, V], initialBuckets int) Map[K, V] {
	raw := make([][]Pair[K, V], initialBuckets)
	size := 0
	for _, p := range pairs {
		idx := int(hash(p.Key) % uint64(initialBuckets))
		if insertOrUpdate(&raw[idx], p) {
			size++
		}
	}

	bucketVectors := make([]vector.Vector[Pair[K, V]], initialBuckets)
	for i, bucket := range raw {
		bucketVectors[i] = vector.FromSlice(ctx, bucket)
	}
	buckets := vector.FromSlice(ctx, bucketVectors)
	return Map[K, V]{ctx: ctx, hash: hash, size: size, buckets: buckets, logger: perrors.Default(nil)}
}

// insertOrUpdate inserts p into bucket, overwriting an existing entry
// for the same key. It reports whether p.Key was not already present.
func insertOrUpdate[K comparable, V any](bucket *[]Pair[K, V], p Pair[K, V]) bool {
	for i, existing := range *bucket {
		if existing.Key == p.Key {
			(*bucket)[i].Value = p.Value
			return false
		}
	}
	*bucket = append(*bucket, p)
	return true
}

// WithLogger returns a copy of m that reports structural events
// (rehashes) to logger instead of discarding them.
func (m Map[K, V]) WithLogger(logger perrors.Logger) Map[K, V] {
	m.logger = perrors.Default(logger)
	return m
}

// Len returns the number of key/value pairs stored.
func (m Map[K, V]) Len() int { return m.size }

// IsEmpty reports whether Len() == 0.
func (m Map[K, V]) IsEmpty() bool { return m.size == 0 }

func (m Map[K, V]) bucketIndex(key K) int {
	return int(m.hash(key) % uint64(m.buckets.Len()))
}

func findInBucket[K comparable, V any](bucket vector.Vector[Pair[K, V]], key K) (Pair[K, V], int, bool) {
	for i := 0; i < bucket.Len(); i++ {
		p := bucket.Get(i)
		if p.Key == key {
			return p, i, true
		}
	}
	var zero Pair[K, V]
	return zero, -1, false
}

// At returns the value stored for key, or an error if key is absent.
func (m Map[K, V]) At(key K) (V, error) {
	bucket := m.buckets.Get(m.bucketIndex(key))
	if p, _, ok := findInBucket(bucket, key); ok {
		return p.Value, nil
	}
	var zero V
	return zero, perrors.OutOfRangef("pmap.At: key not found")
}

// Get returns the value stored for key. It panics if key is absent; use
// At for a checked variant.
func (m Map[K, V]) Get(key K) V {
	v, err := m.At(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Contains reports whether key has a stored value.
func (m Map[K, V]) Contains(key K) bool {
	_, _, ok := findInBucket(m.buckets.Get(m.bucketIndex(key)), key)
	return ok
}

// Find returns a cursor at key's bucket and slot, or the canonical End
// cursor if key is absent, matching PersistentMap::find/cend in the
// reference implementation.
func (m Map[K, V]) Find(key K) Iterator[K, V] {
	idx := m.bucketIndex(key)
	if _, pos, found := findInBucket(m.buckets.Get(idx), key); found {
		return Iterator[K, V]{m: m, outer: idx, inner: pos}
	}
	return End(m)
}

// Count returns 1 if key is present, 0 otherwise (a hash map never has
// duplicate keys, unlike the multi-key containers this name evokes in
// other libraries — kept for parity with the reference API).
func (m Map[K, V]) Count(key K) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

func (m Map[K, V]) derive(buckets vector.Vector[vector.Vector[Pair[K, V]]], size int) Map[K, V] {
	return Map[K, V]{ctx: m.ctx, hash: m.hash, size: size, buckets: buckets, logger: m.logger}
}

// rehash doubles the bucket count and redistributes every existing
// pair plus the one being inserted, matching
// getReallocatedVectorOfPersistentVectors in the reference
// implementation.
func (m Map[K, V]) rehash(extra Pair[K, V]) vector.Vector[vector.Vector[Pair[K, V]]] {
	newCount := m.buckets.Len() * 2
	raw := make([][]Pair[K, V], newCount)

	for i := 0; i < m.buckets.Len(); i++ {
		bucket := m.buckets.Get(i)
		for j := 0; j < bucket.Len(); j++ {
			p := bucket.Get(j)
			idx := int(m.hash(p.Key) % uint64(newCount))
			insertOrUpdate(&raw[idx], p)
		}
	}
	idx := int(m.hash(extra.Key) % uint64(newCount))
	insertOrUpdate(&raw[idx], extra)

	bucketVectors := make([]vector.Vector[Pair[K, V]], newCount)
	for i, b := range raw {
		bucketVectors[i] = vector.FromSlice(m.ctx, b)
	}
	m.logger.Log(perrors.Event{Kind: "map.rehash", Detail: "load factor exceeded 0.5"})
	return m.buckets.Reset(bucketVectors)
}

// Set returns a new Map with key bound to value, inserting it if
// absent. Inserting a new key that would push the load factor above
// one half triggers a doubling rehash, matching spec.md §4.4.
func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	idx := m.bucketIndex(key)
	bucket := m.buckets.Get(idx)
	_, pos, found := findInBucket(bucket, key)

	if found {
		newBucket, err := bucket.Set(pos, Pair[K, V]{Key: key, Value: value})
		if err != nil {
			panic(err)
		}
		newBuckets, err := m.buckets.Set(idx, newBucket)
		if err != nil {
			panic(err)
		}
		return m.derive(newBuckets, m.size)
	}

	newSize := m.size + 1
	if newSize > m.buckets.Len()/2 {
		return m.derive(m.rehash(Pair[K, V]{Key: key, Value: value}), newSize)
	}

	newBucket := bucket.PushBack(Pair[K, V]{Key: key, Value: value})
	newBuckets, err := m.buckets.Set(idx, newBucket)
	if err != nil {
		panic(err)
	}
	return m.derive(newBuckets, newSize)
}

// Erase returns a new Map with key removed, or an error if key is
// absent.
func (m Map[K, V]) Erase(key K) (Map[K, V], error) {
	idx := m.bucketIndex(key)
	bucket := m.buckets.Get(idx)
	_, pos, found := findInBucket(bucket, key)
	if !found {
		return m, perrors.OutOfRangef("pmap.Erase: key not found")
	}

	remaining := make([]Pair[K, V], 0, bucket.Len()-1)
	for i := 0; i < bucket.Len(); i++ {
		if i != pos {
			remaining = append(remaining, bucket.Get(i))
		}
	}
	newBucket := vector.FromSlice(m.ctx, remaining)
	newBuckets, err := m.buckets.Set(idx, newBucket)
	if err != nil {
		panic(err)
	}
	return m.derive(newBuckets, m.size-1), nil
}

// Clear returns a new, empty Map with the same bucket count and hash
// function, descended from m's version history.
func (m Map[K, V]) Clear() Map[K, V] {
	empty := vector.New[Pair[K, V]](m.ctx)
	fresh := make([]vector.Vector[Pair[K, V]], m.buckets.Len())
	for i := range fresh {
		fresh[i] = empty
	}
	return m.derive(m.buckets.Reset(fresh), 0)
}

// recomputeSize sums every bucket's length, mirroring how undo/redo
// recompute m_size in the reference implementation rather than storing
// it on the (vector-owned) version tree.
func recomputeSize[K comparable, V any](buckets vector.Vector[vector.Vector[Pair[K, V]]]) int {
	total := 0
	for i := 0; i < buckets.Len(); i++ {
		total += buckets.Get(i).Len()
	}
	return total
}

// CanUndo reports whether Undo would move to a different version.
func (m Map[K, V]) CanUndo() bool { return m.buckets.CanUndo() }

// CanRedo reports whether Redo would move to a different version.
func (m Map[K, V]) CanRedo() bool { return m.buckets.CanRedo() }

// Undo returns the Map as it was one mutation ago.
func (m Map[K, V]) Undo() Map[K, V] {
	buckets := m.buckets.Undo()
	return m.derive(buckets, recomputeSize[K, V](buckets))
}

// Redo reverses the most recent Undo.
func (m Map[K, V]) Redo() Map[K, V] {
	buckets := m.buckets.Redo()
	return m.derive(buckets, recomputeSize[K, V](buckets))
}

// ForEach calls fn for every stored pair, in unspecified bucket order.
// It stops early if fn returns false.
func (m Map[K, V]) ForEach(fn func(key K, value V) bool) {
	for i := 0; i < m.buckets.Len(); i++ {
		bucket := m.buckets.Get(i)
		for j := 0; j < bucket.Len(); j++ {
			p := bucket.Get(j)
			if !fn(p.Key, p.Value) {
				return
			}
		}
	}
}

// Equal reports whether m and other hold the same key/value pairs,
// using eq to compare values, independent of bucket-table shape.
func (m Map[K, V]) Equal(other Map[K, V], eq func(a, b V) bool) bool {
	if m.size != other.size {
		return false
	}
	equal := true
	m.ForEach(func(key K, value V) bool {
		otherValue, err := other.At(key)
		if err != nil || !eq(value, otherValue) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
