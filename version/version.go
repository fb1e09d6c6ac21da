// Package version provides the shared, monotonically increasing version
// counter that stamps every mutation across a family of persistent
// containers (pds/vector, pds/list, pds/pmap).
package version

import "sync/atomic"

// ID is a 64-bit version identifier. Ancestors in a version chain always
// carry a strictly smaller ID than their descendants; no other ordering
// guarantee is made between independently derived containers.
type ID uint64

// Context is a shared counter for one family of containers. Containers
// created from the same Context can have their version IDs compared for
// ancestry by the fat-node lookup in package list; containers from
// different Contexts should never be mixed.
//
// A zero Context is not usable; construct one with New.
type Context struct {
	counter uint64
}

// New returns a fresh Context whose first issued ID is 1; Next never
// returns 0.
func New() *Context {
	return &Context{}
}

// Next atomically advances the counter and returns the newly minted ID.
// Safe to call concurrently from multiple goroutines; the caller gets no
// guarantee about the relative order of concurrently issued IDs beyond
// each being unique.
func (c *Context) Next() ID {
	return ID(atomic.AddUint64(&c.counter, 1))
}
