// Package list implements the persistent, confluently-undoable doubly
// linked list of spec.md §4.2/§4.3: Driscoll–Sarnak–Sleator–Tarjan
// "fat nodes" of capacity 2, each holding up to two physical
// (prev, value, next) triples tagged with the version they were
// created for.
package list

import "github.com/sarat-asymmetrica/pds/version"

// fatNodeCapacity is the Driscoll et al. bound: a fat node holds at
// most two physical versions before it must split.
const fatNodeCapacity = 2

// physNode is one physical (prev, value, next) triple, tagged with the
// version it was created under.
type physNode[T any] struct {
	version version.ID
	value   T
	prev    *fatNode[T]
	next    *fatNode[T]
}

func newPhysNode[T any](ver version.ID, value T, prev, next *fatNode[T]) *physNode[T] {
	return &physNode[T]{version: ver, value: value, prev: prev, next: next}
}
