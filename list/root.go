package list

import "github.com/sarat-asymmetrica/pds/version"

// listRoot is the list's version-tree node: version id, size, the
// front/back fat-node pointers for this version, and parent/child
// links for Undo/Redo. Unlike the vector's version tree, the list
// needs no separate "original" back-reference — a mutation performed
// from an undo cursor simply parents on the cursor itself, since the
// cursor is a distinct root_node from the version it was undone from
// (see DESIGN.md, the "list/" section).
type listRoot[T any] struct {
	version version.ID
	size    int
	parent  *listRoot[T]
	child   *listRoot[T]
	front   *fatNode[T]
	back    *fatNode[T]
}

func newEmptyRoot[T any](id version.ID, parent *listRoot[T]) *listRoot[T] {
	return &listRoot[T]{version: id, size: 0, parent: parent, front: newFatNode[T](), back: newFatNode[T]()}
}

// undo builds the cursor root that Undo() moves to: a copy of the
// parent's own fields, remembering r as its child so Redo can return.
func undo[T any](r *listRoot[T]) *listRoot[T] {
	p := r.parent
	cursor := &listRoot[T]{version: p.version, size: p.size, front: p.front, back: p.back, parent: p.parent}
	cursor.child = r
	return cursor
}

// redo builds the root that Redo() moves to: a copy of r's child's
// fields, parented back on r, preserving any further redo chain beyond
// the child.
func redo[T any](r *listRoot[T]) *listRoot[T] {
	c := r.child
	next := &listRoot[T]{version: c.version, size: c.size, front: c.front, back: c.back, parent: r}
	next.child = c.child
	return next
}
