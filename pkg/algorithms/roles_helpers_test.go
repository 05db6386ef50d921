package algorithms

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dd0wney/cluso-roles/pkg/graph"
)

// Scenario node IDs
const (
	nodeA uint64 = iota + 1
	nodeB
	nodeC
	nodeD
)

const epsilon = 1e-9

// setupScenarioGraph builds edges {A-B, A-C, A-D, B-C} with partition
// {1: [A B C], 2: [D]}
func setupScenarioGraph(t testing.TB) (*graph.Undirected, Partition) {
	t.Helper()

	g, err := graph.FromEdges([][2]uint64{
		{nodeA, nodeB},
		{nodeA, nodeC},
		{nodeA, nodeD},
		{nodeB, nodeC},
	})
	if err != nil {
		t.Fatalf("Failed to build scenario graph: %v", err)
	}

	return g, Partition{
		1: {nodeA, nodeB, nodeC},
		2: {nodeD},
	}
}

// setupStarGraph builds a star of center 1 with leaves 2..leaves+1 in module
// 1, plus node 100 alone in module 2 linked to the center
func setupStarGraph(t testing.TB, leaves int) (*graph.Undirected, Partition) {
	t.Helper()

	g := graph.NewUndirected()
	members := []uint64{1}
	for i := 0; i < leaves; i++ {
		leaf := uint64(i + 2)
		if err := g.AddEdge(1, leaf); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
		members = append(members, leaf)
	}
	if err := g.AddEdge(1, 100); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}

	return g, Partition{1: members, 2: {100}}
}

// randomModularGraph builds a graph of n nodes spread over k modules with
// denser links inside modules. Some nodes may end up isolated.
func randomModularGraph(seed int64, n, k int) (*graph.Undirected, Partition) {
	rng := rand.New(rand.NewSource(seed))
	g := graph.NewUndirected()
	membership := make(map[uint64]int, n)

	for i := 1; i <= n; i++ {
		node := uint64(i)
		g.AddNode(node)
		membership[node] = rng.Intn(k)
	}

	for a := 1; a <= n; a++ {
		for b := a + 1; b <= n; b++ {
			p := 0.05
			if membership[uint64(a)] == membership[uint64(b)] {
				p = 0.4
			}
			if rng.Float64() < p {
				_ = g.AddEdge(uint64(a), uint64(b))
			}
		}
	}

	return g, PartitionFromMembership(membership)
}

func assertClose(t *testing.T, label string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}
