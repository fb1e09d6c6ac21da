package list

import "github.com/sarat-asymmetrica/pds/internal/perrors"

// fatNode is a bag of at most fatNodeCapacity physNodes, each tagged
// with the version it belongs to. findNode locates the physNode valid
// as of a given root's version by walking the root's ancestry — the
// fat-node lookup of spec.md §3.3/§4.2.
type fatNode[T any] struct {
	nodes []*physNode[T]
}

func newFatNode[T any]() *fatNode[T] {
	return &fatNode[T]{}
}

func newFatNodeWith[T any](n *physNode[T]) *fatNode[T] {
	return &fatNode[T]{nodes: []*physNode[T]{n}}
}

func (f *fatNode[T]) add(n *physNode[T]) {
	f.nodes = append(f.nodes, n)
}

func (f *fatNode[T]) isFull() bool  { return len(f.nodes) == fatNodeCapacity }
func (f *fatNode[T]) isEmpty() bool { return len(f.nodes) == 0 }

// findNode walks from root up through parent links, looking for the
// physNode in f whose version exactly matches some ancestor's version.
// Every mutation stamps the new listRoot and any physNode it creates
// with the same version id. f may hold physNodes of two different
// ancestors; the walk returns the one belonging to the nearest. Exhausting
// the chain without a match means the version tree itself is
// inconsistent — a library bug, not a caller error.
func (f *fatNode[T]) findNode(root *listRoot[T]) *physNode[T] {
	for r := root; r != nil; r = r.parent {
		for _, n := range f.nodes {
			if n.version == r.version {
				return n
			}
		}
	}
	panic(perrors.InvariantViolationf("list: fat-node lookup exhausted version ancestry without a match"))
}

// updateNext returns the fat node that should replace fat's slot in the
// structure after splicing in next as the successor of the physNode
// valid at newRoot's version, splitting fat (and propagating left, via
// updateNext over the predecessor's fat node) if fat was already full.
func updateNext[T any](fat *fatNode[T], next *fatNode[T], newRoot *listRoot[T]) *fatNode[T] {
	found := fat.findNode(newRoot)
	fresh := newPhysNode(newRoot.version, found.value, found.prev, next)

	if !fat.isFull() {
		fat.add(fresh)
		return fat
	}

	split := newFatNodeWith(fresh)
	if found.prev != nil {
		fresh.prev = updateNext(found.prev, split, newRoot)
	} else {
		newRoot.front = split
	}
	return split
}

// updatePrev is the mirror of updateNext, splicing in prev as the
// predecessor and propagating right on overflow.
func updatePrev[T any](fat *fatNode[T], prev *fatNode[T], newRoot *listRoot[T]) *fatNode[T] {
	found := fat.findNode(newRoot)
	fresh := newPhysNode(newRoot.version, found.value, prev, found.next)

	if !fat.isFull() {
		fat.add(fresh)
		return fat
	}

	split := newFatNodeWith(fresh)
	if found.next != nil {
		fresh.next = updatePrev(found.next, split, newRoot)
	} else {
		newRoot.back = split
	}
	return split
}
