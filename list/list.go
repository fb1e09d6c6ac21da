package list

import (
	"github.com/sarat-asymmetrica/pds/internal/perrors"
	"github.com/sarat-asymmetrica/pds/version"
)

// List is an immutable, persistent doubly linked list with undo/redo
// over its own mutation history. Every mutating method returns a new
// List; the receiver is left untouched and remains valid to use.
//
// The zero List is not usable. Construct one with New or FromSlice.
type List[T any] struct {
	ctx    *version.Context
	root   *listRoot[T]
	logger perrors.Logger
}

// New returns an empty List drawing version ids from ctx.
func New[T any](ctx *version.Context) List[T] {
	return List[T]{ctx: ctx, root: newEmptyRoot[T](ctx.Next(), nil), logger: perrors.Default(nil)}
}

// FromSlice returns a List holding a copy of items, front to back, as
// a single initial version (no intermediate versions are created, so
// the resulting List cannot Undo past its starting content).
func FromSlice[T any](ctx *version.Context, items []T) List[T] {
	id := ctx.Next()
	var front, prevFat *fatNode[T]
	var prevNode *physNode[T]

	for _, v := range items {
		n := newPhysNode(id, v, prevFat, nil)
		fat := newFatNodeWith(n)
		if front == nil {
			front = fat
		} else {
			prevNode.next = fat
		}
		prevNode = n
		prevFat = fat
	}
	if front == nil {
		front = newFatNode[T]()
	}
	back := prevFat
	if back == nil {
		back = newFatNode[T]()
	}

	root := &listRoot[T]{version: id, size: len(items), front: front, back: back}
	return List[T]{ctx: ctx, root: root, logger: perrors.Default(nil)}
}

// WithLogger returns a copy of l that reports events to logger instead
// of discarding them. PushBack reports a "list.push_back" event; no
// other operation reports one, and fat-node splits are not reported.
func (l List[T]) WithLogger(logger perrors.Logger) List[T] {
	l.logger = perrors.Default(logger)
	return l
}

// Len returns the number of elements.
func (l List[T]) Len() int { return l.root.size }

// IsEmpty reports whether Len() == 0.
func (l List[T]) IsEmpty() bool { return l.root.size == 0 }

// Front returns the first element. Panics if l is empty.
func (l List[T]) Front() T {
	if l.IsEmpty() {
		panic(perrors.InvariantViolationf("list.Front: called on an empty list"))
	}
	return l.root.front.findNode(l.root).value
}

// Back returns the last element. Panics if l is empty.
func (l List[T]) Back() T {
	if l.IsEmpty() {
		panic(perrors.InvariantViolationf("list.Back: called on an empty list"))
	}
	return l.root.back.findNode(l.root).value
}

// Get returns the element at index, walking forward from the front.
// Panics if index is out of range; use At for a checked variant.
func (l List[T]) Get(index int) T {
	if index < 0 || index >= l.root.size {
		panic(perrors.OutOfRangef("list.Get: index %d out of range for length %d", index, l.root.size))
	}
	return l.getByIndex(index).findNode(l.root).value
}

// At is the checked form of Get.
func (l List[T]) At(index int) (T, error) {
	if index < 0 || index >= l.root.size {
		var zero T
		return zero, perrors.OutOfRangef("list.At: index %d out of range for length %d", index, l.root.size)
	}
	return l.getByIndex(index).findNode(l.root).value, nil
}

// getByIndex returns the fat node at index, walking forward from front.
func (l List[T]) getByIndex(index int) *fatNode[T] {
	it := l.root.front
	for i := 0; i < index; i++ {
		it = it.findNode(l.root).next
	}
	return it
}

func (l List[T]) derive(root *listRoot[T]) List[T] {
	return List[T]{ctx: l.ctx, root: root, logger: l.logger}
}

func (l List[T]) initSingleton(value T) List[T] {
	id := l.ctx.Next()
	n := newPhysNode[T](id, value, nil, nil)
	fat := newFatNodeWith(n)
	root := &listRoot[T]{version: id, size: l.root.size + 1, front: fat, back: fat, parent: l.root}
	return l.derive(root)
}

// PushBack returns a new List with value appended.
func (l List[T]) PushBack(value T) List[T] {
	if l.IsEmpty() {
		return l.initSingleton(value)
	}

	id := l.ctx.Next()
	n := newPhysNode[T](id, value, nil, nil)
	fat := newFatNodeWith(n)
	newRoot := &listRoot[T]{version: id, size: l.root.size + 1, front: l.root.front, back: fat, parent: l.root}
	n.prev = updateNext(l.root.back, fat, newRoot)

	out := l.derive(newRoot)
	l.logger.Log(perrors.Event{Kind: "list.push_back", Detail: "appended"})
	return out
}

// PushFront returns a new List with value prepended.
func (l List[T]) PushFront(value T) List[T] {
	if l.IsEmpty() {
		return l.initSingleton(value)
	}

	id := l.ctx.Next()
	n := newPhysNode[T](id, value, nil, nil)
	fat := newFatNodeWith(n)
	newRoot := &listRoot[T]{version: id, size: l.root.size + 1, front: fat, back: l.root.back, parent: l.root}
	n.next = updatePrev(l.root.front, fat, newRoot)

	return l.derive(newRoot)
}

// removeByNode returns a new List with the element held by fat
// removed, handling the four structural cases of spec.md §4.2: the
// sole element, the back, the front, and an interior element (which
// may itself force a fat-node split on the successor side).
func (l List[T]) removeByNode(fat *fatNode[T]) List[T] {
	del := fat.findNode(l.root)

	if del.prev == nil && del.next == nil {
		id := l.ctx.Next()
		newRoot := &listRoot[T]{version: id, size: l.root.size - 1, front: newFatNode[T](), back: newFatNode[T](), parent: l.root}
		return l.derive(newRoot)
	}

	id := l.ctx.Next()
	newRoot := &listRoot[T]{version: id, size: l.root.size - 1, front: l.root.front, back: l.root.back, parent: l.root}

	if del.next == nil {
		newLeft := updateNext[T](del.prev, nil, newRoot)
		if fat == l.root.back {
			newRoot.back = newLeft
		}
		return l.derive(newRoot)
	}

	if del.prev == nil {
		newRight := updatePrev[T](del.next, nil, newRoot)
		if fat == l.root.front {
			newRoot.front = newRight
		}
		return l.derive(newRoot)
	}

	if !del.next.isFull() {
		updateNext(del.prev, del.next, newRoot)
		updatePrev(del.next, del.prev, newRoot)
		return l.derive(newRoot)
	}

	fakeLeft := newFatNode[T]()
	newRightNode := updatePrev(del.next, fakeLeft, newRoot)
	newLeftNode := updateNext(del.prev, newRightNode, newRoot)
	newRightNode.nodes[0].prev = newLeftNode
	return l.derive(newRoot)
}

// PopBack returns a new List with the last element removed. Panics if
// l is empty.
func (l List[T]) PopBack() List[T] {
	if l.IsEmpty() {
		panic(perrors.InvariantViolationf("list.PopBack: called on an empty list"))
	}
	return l.removeByNode(l.root.back)
}

// PopFront returns a new List with the first element removed. Panics
// if l is empty.
func (l List[T]) PopFront() List[T] {
	if l.IsEmpty() {
		panic(perrors.InvariantViolationf("list.PopFront: called on an empty list"))
	}
	return l.removeByNode(l.root.front)
}

// Insert returns a new List with value inserted at index, shifting
// elements at and after index one place to the right. index == Len()
// is legal and equivalent to PushBack.
func (l List[T]) Insert(index int, value T) (List[T], error) {
	if index < 0 || index > l.root.size {
		return l, perrors.OutOfRangef("list.Insert: index %d out of range for length %d", index, l.root.size)
	}
	if index == l.root.size {
		return l.PushBack(value), nil
	}

	id := l.ctx.Next()
	n := newPhysNode[T](id, value, nil, nil)
	fat := newFatNodeWith(n)

	if index == 0 {
		newRoot := &listRoot[T]{version: id, size: l.root.size + 1, front: fat, back: l.root.back, parent: l.root}
		n.next = updatePrev(l.root.front, fat, newRoot)
		return l.derive(newRoot), nil
	}

	newRoot := &listRoot[T]{version: id, size: l.root.size + 1, front: l.root.front, back: l.root.back, parent: l.root}
	before := l.getByIndex(index - 1)
	n.prev = updateNext(before, fat, newRoot)

	after := before.findNode(l.root).next
	if after == nil {
		newRoot.back = fat
	} else {
		n.next = updatePrev(after, fat, newRoot)
	}
	return l.derive(newRoot), nil
}

// Set returns a new List with the element at index replaced by value.
func (l List[T]) Set(index int, value T) (List[T], error) {
	if index < 0 || index >= l.root.size {
		return l, perrors.OutOfRangef("list.Set: index %d out of range for length %d", index, l.root.size)
	}

	target := l.getByIndex(index)
	found := target.findNode(l.root)

	id := l.ctx.Next()
	n := newPhysNode[T](id, value, found.prev, found.next)
	newRoot := &listRoot[T]{version: id, size: l.root.size, front: l.root.front, back: l.root.back, parent: l.root}

	if !target.isFull() {
		target.add(n)
		return l.derive(newRoot), nil
	}

	split := newFatNodeWith(n)
	if n.prev != nil {
		n.prev = updateNext(found.prev, split, newRoot)
	} else {
		newRoot.front = split
	}
	if n.next != nil {
		n.next = updatePrev(found.next, split, newRoot)
	} else {
		newRoot.back = split
	}
	return l.derive(newRoot), nil
}

// CanUndo reports whether Undo would move to a different version.
func (l List[T]) CanUndo() bool { return l.root.parent != nil }

// CanRedo reports whether Redo would move to a different version.
func (l List[T]) CanRedo() bool { return l.root.child != nil }

// Undo returns the List as it was one mutation ago. If there is no
// prior version, Undo returns l unchanged.
func (l List[T]) Undo() List[T] {
	if !l.CanUndo() {
		return l
	}
	return l.derive(undo(l.root))
}

// Redo reverses the most recent Undo performed from this version. If
// there is nothing to redo, Redo returns l unchanged.
func (l List[T]) Redo() List[T] {
	if !l.CanRedo() {
		return l
	}
	return l.derive(redo(l.root))
}

// Equal reports whether l and other hold the same sequence of
// elements, using eq to compare individual elements.
func (l List[T]) Equal(other List[T], eq func(a, b T) bool) bool {
	if l.root == other.root {
		return true
	}
	if l.Len() != other.Len() {
		return false
	}
	ai, bi := Begin(l), Begin(other)
	for ai.Valid() {
		if !eq(ai.Value(), bi.Value()) {
			return false
		}
		ai, bi = ai.Next(), bi.Next()
	}
	return true
}

// ToSlice copies l's elements into a new slice, front to back.
func (l List[T]) ToSlice() []T {
	out := make([]T, 0, l.Len())
	for it := Begin(l); it.Valid(); it = it.Next() {
		out = append(out, it.Value())
	}
	return out
}
