package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initComputationMetrics() {
	r.ComputationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_roles_computations_total",
			Help: "Total number of node-role metric computations",
		},
		[]string{"metric", "status"},
	)

	r.ComputationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_roles_computation_duration_seconds",
			Help:    "Node-role metric computation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"metric"},
	)

	r.NodesScored = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_roles_nodes_scored",
			Help:    "Number of nodes scored per computation",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"metric"},
	)

	r.ModulesScored = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_roles_modules_scored",
			Help:    "Number of modules in the partition per computation",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		},
		[]string{"metric"},
	)

	r.WorkersUsed = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_roles_workers_used",
			Help: "Worker goroutines the most recent computation scored modules on",
		},
	)
}

func (r *Registry) initPolicyMetrics() {
	r.DegenerateModulesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_roles_degenerate_modules_total",
			Help: "Modules with zero within-module degree variance",
		},
		[]string{"metric"},
	)

	r.ZeroDegreeNodesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_roles_zero_degree_nodes_total",
			Help: "Isolated nodes encountered while computing participation",
		},
		[]string{"metric"},
	)

	r.InvalidPartitionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cluso_roles_invalid_partitions_total",
			Help: "Partitions rejected by validation",
		},
	)
}
