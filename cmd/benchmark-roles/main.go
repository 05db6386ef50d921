package main

import (
	"cmp"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/dd0wney/cluso-roles/pkg/algorithms"
	"github.com/dd0wney/cluso-roles/pkg/graph"
	"github.com/dd0wney/cluso-roles/pkg/logging"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
	"github.com/dd0wney/cluso-roles/pkg/partition"
)

func main() {
	numNodes := flag.Int("nodes", 10000, "Number of nodes")
	numModules := flag.Int("modules", 50, "Number of modules")
	intraDegree := flag.Int("intra", 8, "Average links per node inside its module")
	interDegree := flag.Int("inter", 2, "Average links per node to other modules")
	numWorkers := flag.Int("workers", 0, "Number of worker goroutines (0 = CPU count)")
	seed := flag.Int64("seed", 1, "Random seed")
	configPath := flag.String("config", "", "Optional YAML config file")
	strategy := flag.String("strategy", "planted", "Partition to score: planted, hash or range")
	flag.Parse()

	if *numWorkers == 0 {
		*numWorkers = runtime.NumCPU()
	}
	if *numNodes < 1 || *numModules < 1 || *numModules > *numNodes {
		fmt.Fprintf(os.Stderr, "nodes must be >= modules >= 1\n")
		os.Exit(2)
	}

	cfg, logger, err := loadConfig(*configPath, os.Stderr)
	if err != nil {
		fatalf("Invalid config: %v", err)
	}
	registry := metrics.NewRegistry()

	fmt.Printf("Node-Role Metrics Benchmark\n")
	fmt.Printf("===========================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes:        %d\n", *numNodes)
	fmt.Printf("  Modules:      %d\n", *numModules)
	fmt.Printf("  Intra degree: %d\n", *intraDegree)
	fmt.Printf("  Inter degree: %d\n", *interDegree)
	fmt.Printf("  CPU Cores:    %d\n", runtime.NumCPU())
	fmt.Printf("  Workers:      %d\n\n", *numWorkers)

	fmt.Printf("Creating test graph...\n")
	start := time.Now()
	g, p := createModularGraph(*numNodes, *numModules, *intraDegree, *interDegree, *seed)
	stats := g.GetStatistics()
	fmt.Printf("   Created %d nodes and %d edges in %s\n", stats.NodeCount, stats.EdgeCount, time.Since(start))

	p = choosePartition(g, p, *strategy, *numModules, uint64(*numNodes))
	quality, err := partition.ComputeMetrics(g, p)
	if err != nil {
		fatalf("Invalid partition: %v", err)
	}
	fmt.Printf("   Partition:    %s (%d modules)\n", *strategy, len(p))
	fmt.Printf("   Cut ratio:    %.3f\n", quality.CutRatio)
	fmt.Printf("   Load balance: %.3f\n\n", quality.LoadBalance)

	sequential := *cfg
	sequential.Workers = 1
	concurrent := *cfg
	concurrent.Workers = min(*numWorkers, algorithms.MaxConfigWorkers)

	fmt.Printf("Testing sequential analysis...\n")
	seqReport := runAnalysis(g, p, &sequential, logger, registry)

	fmt.Printf("Testing parallel analysis (%d workers)...\n", concurrent.Workers)
	parReport := runAnalysis(g, p, &concurrent, logger, registry)
	fmt.Printf("   Speedup:  %.2fx\n\n", seqReport.Duration.Seconds()/parReport.Duration.Seconds())

	fmt.Printf("Roles:\n")
	counts := parReport.RoleCounts()
	for role := algorithms.RoleUltraPeripheral; role <= algorithms.RoleKinlessHub; role++ {
		fmt.Printf("   %s %-18s %d\n", role.Code(), role, counts[role])
	}

	hubs := parReport.Hubs()
	slices.SortFunc(hubs, func(a, b uint64) int {
		return cmp.Compare(parReport.WithinModuleDegree[b], parReport.WithinModuleDegree[a])
	})
	fmt.Printf("\nTop hubs by within-module degree:\n")
	for i, node := range hubs[:min(5, len(hubs))] {
		fmt.Printf("   %d. Node %d (z: %.3f, P: %.3f, %s)\n",
			i+1, node, parReport.WithinModuleDegree[node], parReport.ModularParticipation[node], parReport.Roles[node])
	}

	fmt.Printf("\nBenchmark complete\n")
}

func runAnalysis(g graph.Graph, p algorithms.Partition, cfg *algorithms.Config, logger logging.Logger, registry *metrics.Registry) *algorithms.Report {
	opts, err := cfg.Options(logger, registry)
	if err != nil {
		fatalf("Invalid config: %v", err)
	}

	report, err := algorithms.Analyze(g, p, opts...)
	if err != nil {
		fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("   Run:      %s\n", report.ID)
	fmt.Printf("   Duration: %s\n", report.Duration)
	fmt.Printf("   Throughput: %.0f nodes/sec\n", float64(report.Nodes)/report.Duration.Seconds())
	return report
}

func choosePartition(g graph.Graph, planted algorithms.Partition, strategy string, numModules int, maxNodeID uint64) algorithms.Partition {
	var s partition.Strategy
	var err error
	switch strategy {
	case "planted":
		return planted
	case "hash":
		s, err = partition.NewHashPartition(numModules)
	case "range":
		s, err = partition.NewRangePartition(numModules, maxNodeID)
	default:
		fatalf("Unknown strategy %q", strategy)
	}
	if err != nil {
		fatalf("Invalid strategy: %v", err)
	}
	return partition.Assign(g, s)
}

// createModularGraph assigns nodes round-robin to modules and draws random
// links, intraDegree per node inside the module and interDegree across modules
func createModularGraph(numNodes, numModules, intraDegree, interDegree int, seed int64) (*graph.Undirected, algorithms.Partition) {
	rng := rand.New(rand.NewSource(seed))
	g := graph.NewUndirected()
	p := make(algorithms.Partition, numModules)

	for i := 0; i < numNodes; i++ {
		node := uint64(i + 1)
		g.AddNode(node)
		module := i % numModules
		p[module] = append(p[module], node)
	}

	for i := 0; i < numNodes; i++ {
		node := uint64(i + 1)
		members := p[i%numModules]
		for j := 0; j < intraDegree/2; j++ {
			if other := members[rng.Intn(len(members))]; other != node {
				_ = g.AddEdge(node, other)
			}
		}
		for j := 0; j < interDegree/2; j++ {
			if other := uint64(rng.Intn(numNodes) + 1); other != node {
				_ = g.AddEdge(node, other)
			}
		}
	}

	return g, p
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
