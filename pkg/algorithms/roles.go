package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
)

// Role is a node's position in the within-module degree / participation plane
type Role int

const (
	RoleUnknown Role = iota
	RoleUltraPeripheral
	RolePeripheral
	RoleNonHubConnector
	RoleNonHubKinless
	RoleProvincialHub
	RoleConnectorHub
	RoleKinlessHub
)

// Thresholds separating the roles
const (
	HubThreshold = 2.5 // within-module degree at or above which a node is a hub

	ultraPeripheralMax = 0.05
	peripheralMax      = 0.62
	connectorMax       = 0.80
	provincialHubMax   = 0.30
	connectorHubMax    = 0.75
)

var roleNames = map[Role]string{
	RoleUnknown:         "unknown",
	RoleUltraPeripheral: "ultra-peripheral",
	RolePeripheral:      "peripheral",
	RoleNonHubConnector: "non-hub connector",
	RoleNonHubKinless:   "non-hub kinless",
	RoleProvincialHub:   "provincial hub",
	RoleConnectorHub:    "connector hub",
	RoleKinlessHub:      "kinless hub",
}

// String returns the role name
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

// Code returns the short role code (R1..R7), or "R?" for RoleUnknown
func (r Role) Code() string {
	if r < RoleUltraPeripheral || r > RoleKinlessHub {
		return "R?"
	}
	return "R" + string(rune('0'+int(r)))
}

// IsHub reports whether the role is one of the hub roles
func (r Role) IsHub() bool {
	return r >= RoleProvincialHub && r <= RoleKinlessHub
}

// ClassifyRole maps a within-module degree z and a modular participation P
// onto one of seven roles. Non-finite inputs yield RoleUnknown.
func ClassifyRole(z, participation float64) Role {
	if math.IsNaN(z) || math.IsNaN(participation) || math.IsInf(participation, 0) {
		return RoleUnknown
	}

	if z >= HubThreshold {
		switch {
		case participation <= provincialHubMax:
			return RoleProvincialHub
		case participation <= connectorHubMax:
			return RoleConnectorHub
		default:
			return RoleKinlessHub
		}
	}

	switch {
	case participation <= ultraPeripheralMax:
		return RoleUltraPeripheral
	case participation <= peripheralMax:
		return RolePeripheral
	case participation <= connectorMax:
		return RoleNonHubConnector
	default:
		return RoleNonHubKinless
	}
}

// NodeRoles classifies every node from its within-module degree and modular
// participation. Both metrics share the options, so a degenerate module or an
// isolated node is handled by the same policies.
func NodeRoles(g graph.Graph, p Partition, opts ...Option) (map[uint64]Role, error) {
	o := newOptions(opts)
	r := o.begin(metrics.MetricNodeRoles)

	sc, err := newScope(g, p)
	if err != nil {
		return nil, r.fail(err)
	}

	roles, err := sc.nodeRoles(o)
	if err != nil {
		return nil, r.fail(err)
	}

	r.succeed(len(roles), len(sc.modules))
	return roles, nil
}

func (sc *scope) nodeRoles(o *options) (map[uint64]Role, error) {
	within, err := sc.withinModuleDegree(o)
	if err != nil {
		return nil, err
	}
	spread, err := sc.modularParticipation(o)
	if err != nil {
		return nil, err
	}
	return classifyAll(within, spread), nil
}

func classifyAll(within, spread map[uint64]float64) map[uint64]Role {
	roles := make(map[uint64]Role, len(within))
	for node, z := range within {
		roles[node] = ClassifyRole(z, spread[node])
	}
	return roles
}
