// Package algorithms computes node roles in a graph divided into modules.
//
// WithinModuleDegree z-scores each node's links inside its own module.
// ParticipationCoefficient and ModularParticipation measure how a node's links
// are split between its module and the rest of the graph. ClassifyRole and
// NodeRoles combine the two into the seven roles R1..R7, and Analyze returns
// every metric for one graph and partition in a single Report.
//
// All functions validate the partition first and either return a result for
// every node or an error; there are no partial results.
package algorithms
