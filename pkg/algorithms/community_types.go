package algorithms

import (
	"slices"
	"time"
)

// Partition maps a module ID to the IDs of its member nodes. Modules must be
// non-empty, pairwise disjoint, and together cover every node of the graph.
type Partition map[int][]uint64

// PartitionFromMembership builds a Partition from a node -> module mapping.
// Members of each module are sorted by node ID.
func PartitionFromMembership(membership map[uint64]int) Partition {
	p := make(Partition)
	for node, module := range membership {
		p[module] = append(p[module], node)
	}
	for module := range p {
		slices.Sort(p[module])
	}
	return p
}

// ModuleIDs returns the module IDs in ascending order
func (p Partition) ModuleIDs() []int {
	ids := make([]int, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Membership returns the node -> module mapping. If a node appears in more
// than one module, the lowest module ID wins; use Validate to reject that.
func (p Partition) Membership() map[uint64]int {
	membership := make(map[uint64]int)
	for _, module := range p.ModuleIDs() {
		for _, node := range p[module] {
			if _, seen := membership[node]; !seen {
				membership[node] = module
			}
		}
	}
	return membership
}

// Size returns the total number of node entries across all modules
func (p Partition) Size() int {
	n := 0
	for _, members := range p {
		n += len(members)
	}
	return n
}

// nodeScore is a module-local result slot
type nodeScore struct {
	node  uint64
	value float64
}

// Report bundles every node-role metric for one graph and partition
type Report struct {
	ID                   string
	Nodes                int
	Modules              int
	WithinModuleDegree   map[uint64]float64
	Participation        map[uint64]float64 // 1 - (k_out/k)^2
	ModularParticipation map[uint64]float64 // 1 - Σ_s (k_s/k)^2
	Roles                map[uint64]Role
	Duration             time.Duration
}
