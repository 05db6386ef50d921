package metrics

import (
	"time"
)

// RecordComputation records a finished computation. Node and module counts
// are only observed for successful runs.
func (r *Registry) RecordComputation(metric, status string, duration time.Duration, nodes, modules int) {
	r.ComputationsTotal.WithLabelValues(metric, status).Inc()
	r.ComputationDuration.WithLabelValues(metric).Observe(duration.Seconds())

	if status == StatusSuccess {
		r.NodesScored.WithLabelValues(metric).Observe(float64(nodes))
		r.ModulesScored.WithLabelValues(metric).Observe(float64(modules))
	}
}

// RecordDegenerateModule counts a module whose intra-module degrees have zero variance
func (r *Registry) RecordDegenerateModule(metric string) {
	r.DegenerateModulesTotal.WithLabelValues(metric).Inc()
}

// RecordZeroDegreeNode counts an isolated node
func (r *Registry) RecordZeroDegreeNode(metric string) {
	r.ZeroDegreeNodesTotal.WithLabelValues(metric).Inc()
}

// RecordInvalidPartition counts a rejected partition
func (r *Registry) RecordInvalidPartition() {
	r.InvalidPartitionsTotal.Inc()
}

// SetWorkersUsed records how many goroutines the last module fan-out ran on
func (r *Registry) SetWorkersUsed(n int) {
	r.WorkersUsed.Set(float64(n))
}
