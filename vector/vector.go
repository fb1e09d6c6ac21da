// Package vector implements the persistent, confluently-undoable vector
// of spec.md §4.1/§4.3: a 32-way branching trie with path copying for
// the array shape, and a version tree layered on top for undo/redo.
package vector

import (
	"github.com/sarat-asymmetrica/pds/internal/perrors"
	"github.com/sarat-asymmetrica/pds/version"
)

// Vector is an immutable, persistent random-access sequence. Every
// mutating method returns a new Vector; the receiver is left untouched
// and remains valid to use.
//
// The zero Vector is not usable. Construct one with New, WithCount,
// WithCountValue or FromSlice.
type Vector[T any] struct {
	ctx    *version.Context
	node   *versionNode[T]
	logger perrors.Logger
}

// New returns an empty Vector drawing version ids from ctx. Containers
// that should be able to undo/redo across each other (including
// containers of different kinds, e.g. a vector and a map built on it)
// must share the same Context.
func New[T any](ctx *version.Context) Vector[T] {
	return newVector[T](ctx, nil, emptyRoot[T]())
}

// WithCount returns a Vector of n zero-valued elements.
func WithCount[T any](ctx *version.Context, n int) Vector[T] {
	var zero T
	return WithCountValue(ctx, n, zero)
}

// WithCountValue returns a Vector of n copies of value.
func WithCountValue[T any](ctx *version.Context, n int, value T) Vector[T] {
	r := emptyRoot[T]()
	for i := 0; i < n; i++ {
		r.emplaceBackInPlace(value)
	}
	return newVector[T](ctx, nil, r)
}

// FromSlice returns a Vector holding a copy of items, in order.
func FromSlice[T any](ctx *version.Context, items []T) Vector[T] {
	r := emptyRoot[T]()
	for _, v := range items {
		r.emplaceBackInPlace(v)
	}
	return newVector[T](ctx, nil, r)
}

func newVector[T any](ctx *version.Context, parent *versionNode[T], r *root[T]) Vector[T] {
	return Vector[T]{ctx: ctx, node: newVersionNode(ctx.Next(), r, parent), logger: perrors.Default(nil)}
}

// WithLogger returns a copy of v that reports events to logger instead
// of discarding them. PushBack reports a "vector.push_back" event; no
// other operation reports one.
func (v Vector[T]) WithLogger(logger perrors.Logger) Vector[T] {
	v.logger = perrors.Default(logger)
	return v
}

// Len returns the number of elements.
func (v Vector[T]) Len() int { return v.node.root.length }

// IsEmpty reports whether Len() == 0.
func (v Vector[T]) IsEmpty() bool { return v.node.root.length == 0 }

// Get returns the element at pos. It panics if pos is out of range;
// use At for a checked variant.
func (v Vector[T]) Get(pos int) T {
	if pos < 0 || pos >= v.node.root.length {
		panic(perrors.OutOfRangef("vector.Get: index %d out of range for length %d", pos, v.node.root.length))
	}
	return v.node.root.get(pos)
}

// At is the checked form of Get.
func (v Vector[T]) At(pos int) (T, error) {
	if pos < 0 || pos >= v.node.root.length {
		var zero T
		return zero, perrors.OutOfRangef("vector.At: index %d out of range for length %d", pos, v.node.root.length)
	}
	return v.node.root.get(pos), nil
}

// Front returns the first element. Panics on an empty Vector.
func (v Vector[T]) Front() T { return v.Get(0) }

// Back returns the last element. Panics on an empty Vector.
func (v Vector[T]) Back() T { return v.Get(v.Len() - 1) }

func (v Vector[T]) derive(r *root[T]) Vector[T] {
	parent := mutationParent(v.node)
	return Vector[T]{ctx: v.ctx, node: newVersionNode(v.ctx.Next(), r, parent), logger: v.logger}
}

// Set returns a new Vector with the element at pos replaced by value.
func (v Vector[T]) Set(pos int, value T) (Vector[T], error) {
	if pos < 0 || pos >= v.node.root.length {
		return v, perrors.OutOfRangef("vector.Set: index %d out of range for length %d", pos, v.node.root.length)
	}
	return v.derive(v.node.root.set(pos, value)), nil
}

// PushBack returns a new Vector with value appended.
func (v Vector[T]) PushBack(value T) Vector[T] {
	out := v.derive(v.node.root.emplaceBack(value))
	v.logger.Log(perrors.Event{Kind: "vector.push_back", Detail: "appended"})
	return out
}

// PopBack returns a new Vector with the last element removed. It
// panics if v is empty.
func (v Vector[T]) PopBack() Vector[T] {
	if v.IsEmpty() {
		panic(perrors.InvariantViolationf("vector.PopBack: called on an empty vector"))
	}
	return v.derive(v.node.root.popBack())
}

// Resize returns a new Vector of length n, padding with the zero value
// of T if n is larger than Len(), or truncating if smaller. If n equals
// Len() it may return v unchanged.
func (v Vector[T]) Resize(n int) Vector[T] {
	var zero T
	return v.ResizeValue(n, zero)
}

// ResizeValue is Resize, padding with value instead of the zero value.
func (v Vector[T]) ResizeValue(n int, value T) Vector[T] {
	if n == v.Len() {
		return v
	}
	if n < v.Len() {
		return v.derive(v.node.root.shrink(n))
	}
	return v.derive(v.node.root.grow(n, value))
}

// Clear returns a new, empty Vector descended from v's version history.
func (v Vector[T]) Clear() Vector[T] {
	return v.derive(emptyRoot[T]())
}

// Reset returns a new Vector holding a copy of items, discarding v's
// prior content but still descended from v's version history (Undo can
// walk back past the reset).
func (v Vector[T]) Reset(items []T) Vector[T] {
	r := emptyRoot[T]()
	for _, it := range items {
		r.emplaceBackInPlace(it)
	}
	return v.derive(r)
}

// CanUndo reports whether Undo would move to a different version.
func (v Vector[T]) CanUndo() bool { return v.node.parent != nil }

// CanRedo reports whether Redo would move to a different version.
func (v Vector[T]) CanRedo() bool { return v.node.redoChild != nil }

// Undo returns the Vector as it was one mutation ago. If there is no
// prior version, Undo returns v unchanged.
func (v Vector[T]) Undo() Vector[T] {
	if !v.CanUndo() {
		return v
	}
	return Vector[T]{ctx: v.ctx, node: undoTo(v.ctx.Next(), v.node), logger: v.logger}
}

// Redo reverses the most recent Undo performed from this version. If
// there is nothing to redo, Redo returns v unchanged.
func (v Vector[T]) Redo() Vector[T] {
	if !v.CanRedo() {
		return v
	}
	return Vector[T]{ctx: v.ctx, node: v.node.redoChild, logger: v.logger}
}

// Forget detaches v's version node from its ancestor and redo chains,
// letting the garbage collector reclaim them without waiting for every
// other reference to go away naturally. It is an explicit opt-in power
// tool: the caller must be certain no other live Vector still needs to
// Undo/Redo across this chain, since Forget mutates state shared by
// every Vector value that currently points at the same version node.
// See DESIGN.md.
func (v Vector[T]) Forget() Vector[T] {
	v.node.forgetAncestors()
	v.node.forgetRedoDescendants()
	return v
}

// Equal reports whether v and other hold the same sequence of elements,
// using eq to compare individual elements. Two vectors built via
// different mutation paths compare equal whenever their contents match,
// independent of version-tree shape.
func (v Vector[T]) Equal(other Vector[T], eq func(a, b T) bool) bool {
	if v.node.root == other.node.root {
		return true
	}
	if v.Len() != other.Len() {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !eq(v.node.root.get(i), other.node.root.get(i)) {
			return false
		}
	}
	return true
}

// ForEach calls fn for every element in order, stopping early if fn
// returns false.
func (v Vector[T]) ForEach(fn func(index int, value T) bool) {
	for i := 0; i < v.Len(); i++ {
		if !fn(i, v.node.root.get(i)) {
			return
		}
	}
}

// ToSlice copies v's elements into a new slice.
func (v Vector[T]) ToSlice() []T {
	out := make([]T, v.Len())
	for i := range out {
		out[i] = v.node.root.get(i)
	}
	return out
}
