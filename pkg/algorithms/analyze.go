package algorithms

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/logging"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
)

// Analyze validates the partition once and computes every node-role metric.
// Either the full report is returned or an error; there are no partial results.
func Analyze(g graph.Graph, p Partition, opts ...Option) (*Report, error) {
	id := uuid.NewString()
	o := newOptions(append(opts[:len(opts):len(opts)], withRunID(id)))
	r := o.begin(metrics.MetricAnalysis)

	sc, err := newScope(g, p)
	if err != nil {
		return nil, r.fail(err)
	}

	report := &Report{
		ID:      id,
		Nodes:   sc.nodes,
		Modules: len(sc.modules),
	}

	if report.WithinModuleDegree, err = sc.withinModuleDegree(o); err != nil {
		return nil, r.fail(err)
	}
	if report.Participation, err = sc.participationCoefficient(o); err != nil {
		return nil, r.fail(err)
	}
	if report.ModularParticipation, err = sc.modularParticipation(o); err != nil {
		return nil, r.fail(err)
	}
	report.Roles = classifyAll(report.WithinModuleDegree, report.ModularParticipation)

	report.Duration = r.timer.Elapsed()
	r.succeed(report.Nodes, report.Modules)
	return report, nil
}

// withRunID tags every log line of the run
func withRunID(id string) Option {
	return func(o *options) {
		o.logger = o.logger.With(logging.RunID(id))
	}
}

// Hubs returns the nodes whose role is a hub role, in ascending order
func (r *Report) Hubs() []uint64 {
	hubs := make([]uint64, 0)
	for node, role := range r.Roles {
		if role.IsHub() {
			hubs = append(hubs, node)
		}
	}
	slices.Sort(hubs)
	return hubs
}

// RoleCounts returns how many nodes hold each role
func (r *Report) RoleCounts() map[Role]int {
	counts := make(map[Role]int)
	for _, role := range r.Roles {
		counts[role]++
	}
	return counts
}
