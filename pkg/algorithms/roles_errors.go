package algorithms

import (
	"errors"
	"fmt"
)

// Sentinel errors for node-role computations
var (
	ErrNilGraph         = errors.New("graph is nil")
	ErrInvalidPartition = errors.New("invalid partition")
	ErrDegenerateModule = errors.New("module has zero within-module degree variance")
	ErrZeroDegreeNode   = errors.New("node has zero degree")
)

// PartitionError describes why a partition was rejected. It matches
// ErrInvalidPartition with errors.Is.
type PartitionError struct {
	Reason  string
	Module  int
	Node    uint64
	HasNode bool // Node is meaningful
	Orphan  bool // Node belongs to no module, Module is unset
}

// Error implements the error interface.
func (e *PartitionError) Error() string {
	if e.Orphan {
		return fmt.Sprintf("%v: node %d: %s", ErrInvalidPartition, e.Node, e.Reason)
	}
	if e.HasNode {
		return fmt.Sprintf("%v: module %d: node %d: %s", ErrInvalidPartition, e.Module, e.Node, e.Reason)
	}
	return fmt.Sprintf("%v: module %d: %s", ErrInvalidPartition, e.Module, e.Reason)
}

// Unwrap returns ErrInvalidPartition.
func (e *PartitionError) Unwrap() error {
	return ErrInvalidPartition
}

// DegenerateModuleError names the module whose intra-module degrees are all equal.
type DegenerateModuleError struct {
	Module int
	Degree int // the shared intra-module degree
	Size   int
}

// Error implements the error interface.
func (e *DegenerateModuleError) Error() string {
	return fmt.Sprintf("module %d (%d nodes, intra-module degree %d): %v", e.Module, e.Size, e.Degree, ErrDegenerateModule)
}

// Unwrap returns ErrDegenerateModule.
func (e *DegenerateModuleError) Unwrap() error {
	return ErrDegenerateModule
}

// ZeroDegreeNodeError names an isolated node.
type ZeroDegreeNodeError struct {
	Node   uint64
	Module int
}

// Error implements the error interface.
func (e *ZeroDegreeNodeError) Error() string {
	return fmt.Sprintf("node %d in module %d: %v", e.Node, e.Module, ErrZeroDegreeNode)
}

// Unwrap returns ErrZeroDegreeNode.
func (e *ZeroDegreeNodeError) Unwrap() error {
	return ErrZeroDegreeNode
}

// IsInvalidPartition returns true if err is a partition validation failure.
func IsInvalidPartition(err error) bool {
	return errors.Is(err, ErrInvalidPartition)
}
