package partition

import (
	"errors"
	"hash/fnv"

	"github.com/dd0wney/cluso-roles/pkg/algorithms"
	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/stats"
)

// ErrInvalidModuleCount is returned when a strategy is built with fewer than one module
var ErrInvalidModuleCount = errors.New("module count must be at least 1")

// Strategy assigns a node to a module without looking at the graph structure
type Strategy interface {
	GetModule(nodeID uint64) int
	GetModuleCount() int
}

// HashPartition spreads nodes over modules by FNV-1a hash of the node ID
type HashPartition struct {
	moduleCount int
}

// NewHashPartition creates a hash-based strategy
func NewHashPartition(moduleCount int) (*HashPartition, error) {
	if moduleCount < 1 {
		return nil, ErrInvalidModuleCount
	}
	return &HashPartition{moduleCount: moduleCount}, nil
}

// GetModule returns which module a node belongs to
func (hp *HashPartition) GetModule(nodeID uint64) int {
	h := fnv.New64a()
	var b [8]byte
	for i := range b {
		b[i] = byte(nodeID >> (i * 8))
	}
	h.Write(b[:])
	return int(h.Sum64() % uint64(hp.moduleCount))
}

// GetModuleCount returns the number of modules
func (hp *HashPartition) GetModuleCount() int {
	return hp.moduleCount
}

// RangePartition assigns contiguous node ID ranges to modules
type RangePartition struct {
	moduleCount int
	rangeSize   uint64
}

// NewRangePartition creates a range-based strategy for IDs in [0, maxNodeID]
func NewRangePartition(moduleCount int, maxNodeID uint64) (*RangePartition, error) {
	if moduleCount < 1 {
		return nil, ErrInvalidModuleCount
	}
	return &RangePartition{
		moduleCount: moduleCount,
		rangeSize:   max(maxNodeID/uint64(moduleCount), 1),
	}, nil
}

// GetModule returns the module for a node; IDs past the last range land in
// the last module
func (rp *RangePartition) GetModule(nodeID uint64) int {
	module := nodeID / rp.rangeSize
	if module >= uint64(rp.moduleCount) {
		return rp.moduleCount - 1
	}
	return int(module)
}

// GetModuleCount returns the number of modules
func (rp *RangePartition) GetModuleCount() int {
	return rp.moduleCount
}

// Assign builds a partition covering every node of g. Modules the strategy
// leaves empty are omitted, so the result always validates against g.
func Assign(g graph.Graph, s Strategy) algorithms.Partition {
	membership := make(map[uint64]int)
	for _, node := range g.Nodes() {
		membership[node] = s.GetModule(node)
	}
	return algorithms.PartitionFromMembership(membership)
}

// Metrics contains partition quality metrics
type Metrics struct {
	ModuleSizes map[int]int // nodes per module
	EdgeCuts    map[int]int // edges leaving each module
	LoadBalance float64     // 0-1 (1 = perfect balance)
	CutRatio    float64     // fraction of edges joining two modules
}

// ComputeMetrics analyzes the quality of p over g. The partition is validated
// first.
func ComputeMetrics(g graph.Graph, p algorithms.Partition) (*Metrics, error) {
	if err := p.Validate(g); err != nil {
		return nil, err
	}

	membership := p.Membership()
	m := &Metrics{
		ModuleSizes: make(map[int]int, len(p)),
		EdgeCuts:    make(map[int]int, len(p)),
	}

	totalEdges := 0
	totalCuts := 0
	for module, members := range p {
		m.ModuleSizes[module] = len(members)
		m.EdgeCuts[module] = 0

		for _, node := range members {
			for _, neighbor := range g.Neighbors(node) {
				// Each undirected edge is seen from both ends
				if node < neighbor {
					totalEdges++
				}
				if membership[neighbor] != module {
					m.EdgeCuts[module]++
					if node < neighbor {
						totalCuts++
					}
				}
			}
		}
	}

	if totalEdges > 0 {
		m.CutRatio = float64(totalCuts) / float64(totalEdges)
	}
	m.LoadBalance = loadBalance(m.ModuleSizes)

	return m, nil
}

// loadBalance maps the variance of module sizes onto (0, 1], 1 meaning every
// module has the same size
func loadBalance(sizes map[int]int) float64 {
	if len(sizes) == 0 {
		return 1
	}

	values := make([]int, 0, len(sizes))
	for _, size := range sizes {
		values = append(values, size)
	}
	avgSize, variance := stats.MeanVariance(values)

	return 1.0 / (1.0 + variance/avgSize)
}
