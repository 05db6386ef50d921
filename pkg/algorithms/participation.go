package algorithms

import (
	"math"
	"slices"

	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
)

// ParticipationCoefficient computes, for every node i in module m,
//
//	pc_i = 1 - (k_out / k_i)^2
//
// where k_i is the degree of i in the whole graph and k_out the number of
// neighbors outside m. pc is in [0, 1] whenever k_i > 0: a node with every
// neighbor inside its module scores 1, a node with every neighbor outside
// scores 0. Isolated nodes follow the ZeroDegreePolicy (fail by default).
func ParticipationCoefficient(g graph.Graph, p Partition, opts ...Option) (map[uint64]float64, error) {
	o := newOptions(opts)
	r := o.begin(metrics.MetricParticipationCoefficient)

	sc, err := newScope(g, p)
	if err != nil {
		return nil, r.fail(err)
	}

	result, err := sc.participationCoefficient(o)
	if err != nil {
		return nil, r.fail(err)
	}

	r.succeed(len(result), len(sc.modules))
	return result, nil
}

// ModularParticipation computes the participation coefficient in its
// module-spread form,
//
//	P_i = 1 - Σ_s (k_is / k_i)^2
//
// summed over every module s, including the node's own. P is 0 when all of a
// node's links stay inside its module and approaches 1 as links spread evenly
// over many modules. Isolated nodes follow the ZeroDegreePolicy.
func ModularParticipation(g graph.Graph, p Partition, opts ...Option) (map[uint64]float64, error) {
	o := newOptions(opts)
	r := o.begin(metrics.MetricModularParticipation)

	sc, err := newScope(g, p)
	if err != nil {
		return nil, r.fail(err)
	}

	result, err := sc.modularParticipation(o)
	if err != nil {
		return nil, r.fail(err)
	}

	r.succeed(len(result), len(sc.modules))
	return result, nil
}

func (sc *scope) participationCoefficient(o *options) (map[uint64]float64, error) {
	const metric = metrics.MetricParticipationCoefficient

	return sc.scoreModules(o, func(module int) ([]nodeScore, error) {
		members := sc.partition[module]
		scores := make([]nodeScore, len(members))

		for i, source := range members {
			degree := sc.graph.Degree(source)
			if degree == 0 {
				value, err := sc.zeroDegree(o, metric, module, source)
				if err != nil {
					return nil, err
				}
				scores[i] = nodeScore{node: source, value: value}
				continue
			}

			between := 0
			for _, neighbor := range sc.graph.Neighbors(source) {
				if sc.membership[neighbor] != module {
					between++
				}
			}

			ratio := float64(between) / float64(degree)
			scores[i] = nodeScore{node: source, value: 1 - ratio*ratio}
		}
		return scores, nil
	})
}

func (sc *scope) modularParticipation(o *options) (map[uint64]float64, error) {
	const metric = metrics.MetricModularParticipation

	return sc.scoreModules(o, func(module int) ([]nodeScore, error) {
		members := sc.partition[module]
		scores := make([]nodeScore, len(members))
		linksTo := make(map[int]int)
		targets := make([]int, 0)

		for i, source := range members {
			degree := sc.graph.Degree(source)
			if degree == 0 {
				value, err := sc.zeroDegree(o, metric, module, source)
				if err != nil {
					return nil, err
				}
				scores[i] = nodeScore{node: source, value: value}
				continue
			}

			clear(linksTo)
			for _, neighbor := range sc.graph.Neighbors(source) {
				linksTo[sc.membership[neighbor]]++
			}

			// Sum in module order so repeated runs agree bit for bit
			targets = targets[:0]
			for target := range linksTo {
				targets = append(targets, target)
			}
			slices.Sort(targets)

			sum := 0.0
			for _, target := range targets {
				share := float64(linksTo[target]) / float64(degree)
				sum += share * share
			}
			// Rounding can push the sum of shares just past 1
			scores[i] = nodeScore{node: source, value: max(0, 1-sum)}
		}
		return scores, nil
	})
}

// zeroDegree applies the ZeroDegreePolicy to an isolated node
func (sc *scope) zeroDegree(o *options, metric string, module int, node uint64) (float64, error) {
	o.recordZeroDegree(metric, module, node)

	switch o.zeroDegree {
	case ZeroDegreePolicyNaN:
		return math.NaN(), nil
	case ZeroDegreePolicyZero:
		return 0, nil
	default:
		return 0, &ZeroDegreeNodeError{Node: node, Module: module}
	}
}
