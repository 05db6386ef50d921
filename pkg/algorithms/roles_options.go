package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-roles/pkg/logging"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
)

// DegeneratePolicy decides what within-module degree a module with zero
// variance produces.
type DegeneratePolicy int

const (
	// DegeneratePolicyZero scores every node of the module 0.0
	DegeneratePolicyZero DegeneratePolicy = iota
	// DegeneratePolicyFail returns a *DegenerateModuleError
	DegeneratePolicyFail
)

// String returns the config name of the policy
func (p DegeneratePolicy) String() string {
	switch p {
	case DegeneratePolicyZero:
		return "zero"
	case DegeneratePolicyFail:
		return "fail"
	default:
		return "unknown"
	}
}

var degeneratePolicies = []DegeneratePolicy{DegeneratePolicyZero, DegeneratePolicyFail}

// DegeneratePolicyNames lists the config names ParseDegeneratePolicy accepts
func DegeneratePolicyNames() []string {
	return policyNames(degeneratePolicies)
}

// ParseDegeneratePolicy converts a config name to a DegeneratePolicy
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	return parsePolicy(s, degeneratePolicies, "degenerate module")
}

// ZeroDegreePolicy decides what participation an isolated node produces.
type ZeroDegreePolicy int

const (
	// ZeroDegreePolicyFail returns a *ZeroDegreeNodeError
	ZeroDegreePolicyFail ZeroDegreePolicy = iota
	// ZeroDegreePolicyNaN scores the node math.NaN()
	ZeroDegreePolicyNaN
	// ZeroDegreePolicyZero scores the node 0.0
	ZeroDegreePolicyZero
)

// String returns the config name of the policy
func (p ZeroDegreePolicy) String() string {
	switch p {
	case ZeroDegreePolicyFail:
		return "fail"
	case ZeroDegreePolicyNaN:
		return "nan"
	case ZeroDegreePolicyZero:
		return "zero"
	default:
		return "unknown"
	}
}

var zeroDegreePolicies = []ZeroDegreePolicy{ZeroDegreePolicyFail, ZeroDegreePolicyNaN, ZeroDegreePolicyZero}

// ZeroDegreePolicyNames lists the config names ParseZeroDegreePolicy accepts
func ZeroDegreePolicyNames() []string {
	return policyNames(zeroDegreePolicies)
}

// ParseZeroDegreePolicy converts a config name to a ZeroDegreePolicy
func ParseZeroDegreePolicy(s string) (ZeroDegreePolicy, error) {
	return parsePolicy(s, zeroDegreePolicies, "zero degree")
}

func policyNames[P fmt.Stringer](policies []P) []string {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.String()
	}
	return names
}

// parsePolicy returns the first policy named s, or the first policy and an
// error when none matches
func parsePolicy[P fmt.Stringer](s string, policies []P, kind string) (P, error) {
	for _, p := range policies {
		if p.String() == s {
			return p, nil
		}
	}
	return policies[0], fmt.Errorf("unknown %s policy %q", kind, s)
}

type options struct {
	degenerate DegeneratePolicy
	zeroDegree ZeroDegreePolicy
	workers    int
	logger     logging.Logger
	metrics    *metrics.Registry
}

// Option configures a node-role computation
type Option func(*options)

// WithDegeneratePolicy sets the zero-variance module policy (default DegeneratePolicyZero)
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(o *options) { o.degenerate = p }
}

// WithZeroDegreePolicy sets the isolated-node policy (default ZeroDegreePolicyFail)
func WithZeroDegreePolicy(p ZeroDegreePolicy) Option {
	return func(o *options) { o.zeroDegree = p }
}

// WithWorkers spreads modules over n goroutines. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger (default discards)
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records computations on the registry
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) { o.metrics = r }
}

func newOptions(opts []Option) *options {
	o := &options{
		degenerate: DegeneratePolicyZero,
		zeroDegree: ZeroDegreePolicyFail,
		workers:    1,
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(logging.Component("algorithms"))
	return o
}

// run tracks one public computation for logging and metrics
type run struct {
	o      *options
	metric string
	timer  *logging.TimedOperation
}

func (o *options) begin(metric string, fields ...logging.Field) *run {
	if o.metrics != nil {
		o.metrics.SetWorkersUsed(max(o.workers, 1))
	}
	fields = append([]logging.Field{logging.Metric(metric)}, fields...)
	return &run{
		o:      o,
		metric: metric,
		timer:  logging.StartTimer(o.logger, "node-role computation", fields...),
	}
}

func (r *run) fail(err error) error {
	elapsed := r.timer.EndError(err)
	if r.o.metrics != nil {
		if IsInvalidPartition(err) {
			r.o.metrics.RecordInvalidPartition()
		}
		r.o.metrics.RecordComputation(r.metric, metrics.StatusError, elapsed, 0, 0)
	}
	return err
}

func (r *run) succeed(nodes, modules int) {
	elapsed := r.timer.End(logging.Count(nodes), logging.Int("modules", modules))
	if r.o.metrics != nil {
		r.o.metrics.RecordComputation(r.metric, metrics.StatusSuccess, elapsed, nodes, modules)
	}
}

func (o *options) recordDegenerate(metric string, module, size, degree int) {
	if o.metrics != nil {
		o.metrics.RecordDegenerateModule(metric)
	}
	if o.logger.Enabled(logging.DebugLevel) {
		o.logger.Debug("degenerate module",
			logging.Metric(metric),
			logging.Module(module),
			logging.Count(size),
			logging.Int("intra_degree", degree),
			logging.Policy(o.degenerate.String()),
		)
	}
}

func (o *options) recordZeroDegree(metric string, module int, node uint64) {
	if o.metrics != nil {
		o.metrics.RecordZeroDegreeNode(metric)
	}
	if o.logger.Enabled(logging.DebugLevel) {
		o.logger.Debug("zero degree node",
			logging.Metric(metric),
			logging.Module(module),
			logging.NodeID(node),
			logging.Policy(o.zeroDegree.String()),
		)
	}
}
