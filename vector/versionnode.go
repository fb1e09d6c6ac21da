package vector

import "github.com/sarat-asymmetrica/pds/version"

// versionNode is C3: one node of the vector's version tree. A node
// either holds fresh work (redoChild and original nil) or is a pure
// cursor move produced by Undo (redoChild and original set when it is
// built; no existing node's redoChild is changed afterwards, except by
// Forget clearing it).
//
// Unlike the list's fat nodes, the vector's version tree never needs to
// compare version IDs to find a value — navigation is by direct
// pointer (parent / redoChild / original) exactly as in the reference
// implementation's VectorVersionTreeNode. id is carried purely for
// diagnostics/logging.
type versionNode[T any] struct {
	id        version.ID
	root      *root[T]
	parent    *versionNode[T]
	redoChild *versionNode[T]
	original  *versionNode[T]
}

func newVersionNode[T any](id version.ID, r *root[T], parent *versionNode[T]) *versionNode[T] {
	return &versionNode[T]{id: id, root: r, parent: parent}
}

// undoTo builds the cursor node that Undo() moves to: it shares the
// parent's root and parent, and remembers n as its redoChild so that a
// subsequent Redo() can jump back.
func undoTo[T any](id version.ID, n *versionNode[T]) *versionNode[T] {
	p := n.parent
	return &versionNode[T]{id: id, root: p.root, parent: p.parent, redoChild: n, original: p}
}

// mutationParent implements the canonical rule resolving spec.md's
// Open Question: a new mutation's parent is n itself, unless n is
// currently sitting on a redo-capable cursor (n.redoChild != nil), in
// which case the new mutation roots at n.original instead of at n. See
// DESIGN.md "Open Question resolutions" (OQ-1).
func mutationParent[T any](n *versionNode[T]) *versionNode[T] {
	if n.redoChild == nil {
		return n
	}
	return n.original
}

// forgetRedoDescendants iteratively severs the redo-child chain
// starting at n, so the whole discarded chain becomes unreachable in
// one pass without recursing into it. This replaces the reference
// implementation's refcount==2 gated two-pass destructor: Go's GC does
// not need help reclaiming an unreachable graph (it is not
// recursion-stack bound the way C++ destructor chains are), so the
// only purpose left for an explicit call is letting a caller sever a
// long chain sooner than GC would. Because Go exposes no reference
// count, this is an opt-in the caller must only invoke when it knows no
// other container still needs this chain — see Vector.Forget and
// DESIGN.md.
func (n *versionNode[T]) forgetRedoDescendants() {
	cur := n
	for cur.redoChild != nil {
		next := cur.redoChild
		cur.redoChild = nil
		next.original = nil
		cur = next
	}
}

// forgetAncestors iteratively severs the parent chain starting at n.
func (n *versionNode[T]) forgetAncestors() {
	cur := n
	for cur.parent != nil {
		p := cur.parent
		cur.parent = nil
		cur = p
	}
}
