package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/parallel"
)

// scope is a validated graph + partition pair shared by the metric kernels
type scope struct {
	graph      graph.Graph
	partition  Partition
	membership map[uint64]int
	modules    []int
	nodes      int
}

// Validate checks that every module is non-empty, that modules are disjoint,
// that every member exists in g, and that every node of g is assigned.
func (p Partition) Validate(g graph.Graph) error {
	_, err := newScope(g, p)
	return err
}

func newScope(g graph.Graph, p Partition) (*scope, error) {
	if graph.IsNil(g) {
		return nil, ErrNilGraph
	}

	modules := p.ModuleIDs()
	membership := make(map[uint64]int, p.Size())

	for _, module := range modules {
		members := p[module]
		if len(members) == 0 {
			return nil, &PartitionError{Module: module, Reason: "module is empty"}
		}

		for _, node := range members {
			if owner, seen := membership[node]; seen {
				reason := fmt.Sprintf("node also assigned to module %d", owner)
				if owner == module {
					reason = "node listed twice"
				}
				return nil, &PartitionError{Module: module, Node: node, HasNode: true, Reason: reason}
			}
			if !g.HasNode(node) {
				return nil, &PartitionError{Module: module, Node: node, HasNode: true, Reason: "node is not in the graph"}
			}
			membership[node] = module
		}
	}

	nodes := g.Nodes()
	if len(membership) != len(nodes) {
		for _, node := range nodes {
			if _, ok := membership[node]; !ok {
				return nil, &PartitionError{Node: node, HasNode: true, Orphan: true, Reason: "node is not assigned to any module"}
			}
		}
	}

	return &scope{
		graph:      g,
		partition:  p,
		membership: membership,
		modules:    modules,
		nodes:      len(nodes),
	}, nil
}

// scoreModules runs kernel once per module, on the configured number of
// workers, and merges the module-local results. Any kernel error discards
// every result.
func (sc *scope) scoreModules(o *options, kernel func(module int) ([]nodeScore, error)) (map[uint64]float64, error) {
	perModule := make([][]nodeScore, len(sc.modules))
	if o.metrics != nil {
		o.metrics.SetWorkersUsed(parallel.EffectiveWorkers(len(sc.modules), o.workers))
	}

	err := parallel.ForEach(len(sc.modules), o.workers, func(i int) error {
		scores, err := kernel(sc.modules[i])
		if err != nil {
			return err
		}
		perModule[i] = scores
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make(map[uint64]float64, sc.nodes)
	for _, scores := range perModule {
		for _, s := range scores {
			result[s.node] = s.value
		}
	}
	return result, nil
}
