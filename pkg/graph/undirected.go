package graph

import (
	"fmt"
	"slices"
	"sync"
)

// Undirected is an in-memory adjacency-set graph. Parallel edges collapse into
// one and self-loops are rejected, so Degree is always the neighbor count.
type Undirected struct {
	adjacency map[uint64]map[uint64]struct{}
	edgeCount int

	mu sync.RWMutex
}

// NewUndirected creates an empty graph
func NewUndirected() *Undirected {
	return &Undirected{
		adjacency: make(map[uint64]map[uint64]struct{}),
	}
}

// AddNode adds an isolated node. Adding an existing node is a no-op.
func (g *Undirected) AddNode(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(id)
}

func (g *Undirected) addNodeLocked(id uint64) {
	if _, exists := g.adjacency[id]; !exists {
		g.adjacency[id] = make(map[uint64]struct{})
	}
}

// AddEdge connects a and b, creating either node if missing
func (g *Undirected) AddEdge(a, b uint64) error {
	if a == b {
		return fmt.Errorf("edge %d-%d: %w", a, b, ErrSelfLoop)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(a)
	g.addNodeLocked(b)

	if _, exists := g.adjacency[a][b]; exists {
		return nil
	}

	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
	g.edgeCount++
	return nil
}

// RemoveEdge disconnects a and b. Returns ErrNodeNotFound if either node is missing.
func (g *Undirected) RemoveEdge(a, b uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	na, okA := g.adjacency[a]
	nb, okB := g.adjacency[b]
	if !okA || !okB {
		return fmt.Errorf("edge %d-%d: %w", a, b, ErrNodeNotFound)
	}

	if _, exists := na[b]; !exists {
		return nil
	}

	delete(na, b)
	delete(nb, a)
	g.edgeCount--
	return nil
}

// Nodes returns every node ID in ascending order
func (g *Undirected) Nodes() []uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]uint64, 0, len(g.adjacency))
	for id := range g.adjacency {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

// HasNode reports whether the node exists
func (g *Undirected) HasNode(node uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.adjacency[node]
	return exists
}

// Degree returns the number of neighbors of node
func (g *Undirected) Degree(node uint64) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[node])
}

// Neighbors returns the neighbors of node in ascending order
func (g *Undirected) Neighbors(node uint64) []uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.adjacency[node]
	neighbors := make([]uint64, 0, len(set))
	for id := range set {
		neighbors = append(neighbors, id)
	}
	slices.Sort(neighbors)
	return neighbors
}

// HasEdge reports whether a and b are adjacent
func (g *Undirected) HasEdge(a, b uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.adjacency[a][b]
	return exists
}

// NodeCount returns the number of nodes
func (g *Undirected) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency)
}

// EdgeCount returns the number of undirected edges
func (g *Undirected) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeCount
}

// GetStatistics returns node and edge counts
func (g *Undirected) GetStatistics() Statistics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Statistics{
		NodeCount: len(g.adjacency),
		EdgeCount: g.edgeCount,
	}
}

// FromEdges builds a graph from an edge list. Every endpoint becomes a node;
// isolated nodes can be added afterwards with AddNode.
func FromEdges(edges [][2]uint64) (*Undirected, error) {
	g := NewUndirected()
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
