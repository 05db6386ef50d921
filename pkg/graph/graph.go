// Package graph provides the undirected, unweighted adjacency view consumed by
// the node-role algorithms.
package graph

import (
	"errors"
)

var (
	ErrSelfLoop     = errors.New("self-loops are not allowed")
	ErrNodeNotFound = errors.New("node not found")
)

// Graph is the read-only view the algorithms need: node enumeration, degree,
// and direct adjacency. Implementations must be safe for concurrent readers.
type Graph interface {
	// Nodes returns every node ID in ascending order
	Nodes() []uint64
	// HasNode reports whether the node exists
	HasNode(node uint64) bool
	// Degree returns the number of distinct neighbors of node (0 for unknown nodes)
	Degree(node uint64) int
	// Neighbors returns the direct neighbors of node in ascending order
	Neighbors(node uint64) []uint64
	// HasEdge reports whether a and b are directly adjacent
	HasEdge(a, b uint64) bool
}

// Statistics summarizes graph size
type Statistics struct {
	NodeCount int
	EdgeCount int
}

// IsNil reports whether g is nil, including a nil *Undirected stored in the
// interface
func IsNil(g Graph) bool {
	if g == nil {
		return true
	}
	u, ok := g.(*Undirected)
	return ok && u == nil
}
