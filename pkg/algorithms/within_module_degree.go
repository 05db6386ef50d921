package algorithms

import (
	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
	"github.com/dd0wney/cluso-roles/pkg/stats"
)

// WithinModuleDegree computes the within-module degree z-score of every node.
//
// For a node i in module m with k_i neighbors inside m:
//
//	z_i = (k_i - mean_m) / std_m
//
// where mean_m and std_m are the mean and population standard deviation of
// k over the members of m. Modules with std_m == 0 (single-node or uniform
// modules) follow the DegeneratePolicy: 0.0 for every member by default.
//
// Only direct adjacency is consulted: each node's neighbors are scanned once,
// so the cost is linear in the number of edges.
func WithinModuleDegree(g graph.Graph, p Partition, opts ...Option) (map[uint64]float64, error) {
	o := newOptions(opts)
	r := o.begin(metrics.MetricWithinModuleDegree)

	sc, err := newScope(g, p)
	if err != nil {
		return nil, r.fail(err)
	}

	result, err := sc.withinModuleDegree(o)
	if err != nil {
		return nil, r.fail(err)
	}

	r.succeed(len(result), len(sc.modules))
	return result, nil
}

func (sc *scope) withinModuleDegree(o *options) (map[uint64]float64, error) {
	return sc.scoreModules(o, func(module int) ([]nodeScore, error) {
		return sc.moduleWithinDegree(o, module)
	})
}

// intraModuleDegrees counts, for each member, its neighbors in the same module
func (sc *scope) intraModuleDegrees(module int) []int {
	members := sc.partition[module]
	degrees := make([]int, len(members))

	for i, source := range members {
		for _, neighbor := range sc.graph.Neighbors(source) {
			if sc.membership[neighbor] == module {
				degrees[i]++
			}
		}
	}
	return degrees
}

func (sc *scope) moduleWithinDegree(o *options, module int) ([]nodeScore, error) {
	members := sc.partition[module]
	degrees := sc.intraModuleDegrees(module)
	mean, stdDev := stats.MeanStdDev(degrees)

	scores := make([]nodeScore, len(members))

	// Integer degrees make a uniform module's deviation exactly zero
	if stdDev == 0 {
		o.recordDegenerate(metrics.MetricWithinModuleDegree, module, len(members), degrees[0])
		if o.degenerate == DegeneratePolicyFail {
			return nil, &DegenerateModuleError{Module: module, Degree: degrees[0], Size: len(members)}
		}
		for i, node := range members {
			scores[i] = nodeScore{node: node, value: 0}
		}
		return scores, nil
	}

	for i, node := range members {
		scores[i] = nodeScore{node: node, value: (float64(degrees[i]) - mean) / stdDev}
	}
	return scores, nil
}
