package pmap

// Iterator walks a Map's pairs bucket by bucket, skipping empty
// buckets, mirroring map_const_iterator's operator++ in the reference
// implementation. Copying an Iterator yields an independent cursor.
type Iterator[K comparable, V any] struct {
	m     Map[K, V]
	outer int
	inner int
}

// Begin returns an Iterator positioned at m's first pair, or an
// already-exhausted Iterator if m is empty.
func Begin[K comparable, V any](m Map[K, V]) Iterator[K, V] {
	it := Iterator[K, V]{m: m, outer: 0, inner: 0}
	it.skipEmptyBuckets()
	return it
}

// End returns the canonical past-the-end cursor for m: one outer
// position per bucket table shape, with no entry within it. Find
// returns this exact cursor on a miss.
func End[K comparable, V any](m Map[K, V]) Iterator[K, V] {
	return Iterator[K, V]{m: m, outer: m.buckets.Len(), inner: 0}
}

func (it *Iterator[K, V]) skipEmptyBuckets() {
	for it.outer < it.m.buckets.Len() && it.m.buckets.Get(it.outer).Len() == 0 {
		it.outer++
	}
}

// Valid reports whether the cursor refers to a real pair.
func (it Iterator[K, V]) Valid() bool {
	return it.outer < it.m.buckets.Len()
}

// Pair returns the key/value pair the cursor refers to. Panics if
// !Valid().
func (it Iterator[K, V]) Pair() Pair[K, V] {
	return it.m.buckets.Get(it.outer).Get(it.inner)
}

// Next returns a cursor advanced to the following pair.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	next := it
	next.inner++
	if next.inner >= next.m.buckets.Get(next.outer).Len() {
		next.outer++
		next.inner = 0
		next.skipEmptyBuckets()
	}
	return next
}

// Equal compares only the outer (bucket) position, per spec.md §4.7:
// there is a single End/cend value per map shape regardless of which
// bucket's length happened to put the cursor there, and two cursors
// within the same bucket's empty tail are otherwise indistinguishable
// from outside the package.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.outer == other.outer
}
