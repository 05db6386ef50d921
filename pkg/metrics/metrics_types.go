package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric name values used for the "metric" label
const (
	MetricWithinModuleDegree       = "within_module_degree"
	MetricParticipationCoefficient = "participation_coefficient"
	MetricModularParticipation     = "modular_participation"
	MetricNodeRoles                = "node_roles"
	MetricAnalysis                 = "analysis"
)

// Status values used for the "status" label
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registry holds the node-role computation metrics
type Registry struct {
	ComputationsTotal      *prometheus.CounterVec
	ComputationDuration    *prometheus.HistogramVec
	NodesScored            *prometheus.HistogramVec
	ModulesScored          *prometheus.HistogramVec
	DegenerateModulesTotal *prometheus.CounterVec
	ZeroDegreeNodesTotal   *prometheus.CounterVec
	InvalidPartitionsTotal prometheus.Counter
	WorkersUsed            prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized on a private
// prometheus registry
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initComputationMetrics()
	r.initPolicyMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
