package algorithms

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-roles/pkg/logging"
	"github.com/dd0wney/cluso-roles/pkg/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []logging.LogEntry {
	t.Helper()
	var entries []logging.LogEntry
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry logging.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "line: %s", scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestAnalyze_Scenario(t *testing.T) {
	g, p := setupScenarioGraph(t)

	report, err := Analyze(g, p)
	require.NoError(t, err)
	require.NotNil(t, report)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err, "report ID should be a UUID")
	assert.Equal(t, 4, report.Nodes)
	assert.Equal(t, 2, report.Modules)

	for _, node := range []uint64{nodeA, nodeB, nodeC, nodeD} {
		assert.Equal(t, 0.0, report.WithinModuleDegree[node])
	}
	assert.InDelta(t, 8.0/9.0, report.Participation[nodeA], epsilon)
	assert.Equal(t, 1.0, report.Participation[nodeB])
	assert.Equal(t, 1.0, report.Participation[nodeC])
	assert.Equal(t, 0.0, report.Participation[nodeD])
	assert.InDelta(t, 4.0/9.0, report.ModularParticipation[nodeA], epsilon)

	assert.Equal(t, RolePeripheral, report.Roles[nodeA])
	assert.Equal(t, RoleUltraPeripheral, report.Roles[nodeD])
	assert.Empty(t, report.Hubs())
	assert.GreaterOrEqual(t, report.Duration.Nanoseconds(), int64(0))
}

func TestAnalyze_MatchesIndividualMetrics(t *testing.T) {
	g, p := randomModularGraph(11, 120, 5)
	opts := []Option{WithZeroDegreePolicy(ZeroDegreePolicyZero), WithWorkers(3)}

	report, err := Analyze(g, p, opts...)
	require.NoError(t, err)

	within, err := WithinModuleDegree(g, p, opts...)
	require.NoError(t, err)
	participation, err := ParticipationCoefficient(g, p, opts...)
	require.NoError(t, err)
	spread, err := ModularParticipation(g, p, opts...)
	require.NoError(t, err)
	roles, err := NodeRoles(g, p, opts...)
	require.NoError(t, err)

	assert.Equal(t, within, report.WithinModuleDegree)
	assert.Equal(t, participation, report.Participation)
	assert.Equal(t, spread, report.ModularParticipation)
	assert.Equal(t, roles, report.Roles)
}

func TestAnalyze_HubsAndRoleCounts(t *testing.T) {
	g, p := setupStarGraph(t, 9)

	report, err := Analyze(g, p)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1}, report.Hubs())
	assert.Equal(t, map[Role]int{
		RoleProvincialHub:   1,
		RoleUltraPeripheral: 10,
	}, report.RoleCounts())
}

func TestAnalyze_UniqueRunIDs(t *testing.T) {
	g, p := setupScenarioGraph(t)

	first, err := Analyze(g, p)
	require.NoError(t, err)
	second, err := Analyze(g, p)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalyze_NoPartialReport(t *testing.T) {
	g, p := setupScenarioGraph(t)
	g.AddNode(42)
	p[7] = []uint64{42}

	report, err := Analyze(g, p)
	assert.ErrorIs(t, err, ErrZeroDegreeNode)
	assert.Nil(t, report)
}

func TestAnalyze_LogsCarryRunID(t *testing.T) {
	g, p := setupScenarioGraph(t)
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)

	report, err := Analyze(g, p, WithLogger(logger))
	require.NoError(t, err)

	entries := decodeLogLines(t, &buf)
	require.NotEmpty(t, entries)

	degenerate := 0
	for _, entry := range entries {
		assert.Equal(t, report.ID, entry.Fields["run_id"])
		assert.Equal(t, "algorithms", entry.Fields["component"])
		if entry.Message == "degenerate module" {
			degenerate++
		}
	}
	// Both modules of the scenario have uniform intra-module degree
	assert.Equal(t, 2, degenerate)

	last := entries[len(entries)-1]
	assert.Equal(t, "INFO", last.Level)
	assert.Equal(t, metrics.MetricAnalysis, last.Fields["metric"])
	assert.Contains(t, last.Fields, "latency")
}

func TestAnalyze_InfoLevelSkipsDebugDetail(t *testing.T) {
	g, p := setupScenarioGraph(t)
	var buf bytes.Buffer

	_, err := Analyze(g, p, WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)))
	require.NoError(t, err)

	for _, entry := range decodeLogLines(t, &buf) {
		assert.NotEqual(t, "DEBUG", entry.Level)
	}
}

func TestAnalyze_RecordsMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	g, p := setupScenarioGraph(t)

	_, err := Analyze(g, p, WithMetrics(registry), WithWorkers(2))
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, registry.ComputationsTotal.WithLabelValues(metrics.MetricAnalysis, metrics.StatusSuccess)))
	assert.Equal(t, 2.0, counterValue(t, registry.DegenerateModulesTotal.WithLabelValues(metrics.MetricWithinModuleDegree)))

	assert.Equal(t, 2.0, gaugeValue(t, registry.WorkersUsed))

	_, err = Analyze(g, Partition{1: {nodeA}}, WithMetrics(registry))
	require.Error(t, err)
	assert.True(t, IsInvalidPartition(err))

	assert.Equal(t, 1.0, counterValue(t, registry.ComputationsTotal.WithLabelValues(metrics.MetricAnalysis, metrics.StatusError)))
	assert.Equal(t, 1.0, counterValue(t, registry.InvalidPartitionsTotal))
}

func TestAnalyze_WorkersGaugeReportsWorkersUsed(t *testing.T) {
	registry := metrics.NewRegistry()
	g, p := setupScenarioGraph(t)

	// Two modules cap eight requested workers at two
	_, err := Analyze(g, p, WithMetrics(registry), WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, 2.0, gaugeValue(t, registry.WorkersUsed))

	// A single module runs inline
	single := Partition{1: {nodeA, nodeB, nodeC, nodeD}}
	_, err = Analyze(g, single, WithMetrics(registry), WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, 1.0, gaugeValue(t, registry.WorkersUsed))
}

func TestAnalyze_ZeroDegreeMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	g, p := setupScenarioGraph(t)
	g.AddNode(42)
	p[7] = []uint64{42}

	_, err := Analyze(g, p, WithMetrics(registry), WithZeroDegreePolicy(ZeroDegreePolicyNaN))
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, registry.ZeroDegreeNodesTotal.WithLabelValues(metrics.MetricParticipationCoefficient)))
	assert.Equal(t, 1.0, counterValue(t, registry.ZeroDegreeNodesTotal.WithLabelValues(metrics.MetricModularParticipation)))
}

func BenchmarkAnalyze(b *testing.B) {
	g, p := randomModularGraph(1, 2000, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Analyze(g, p, WithZeroDegreePolicy(ZeroDegreePolicyZero), WithWorkers(4)); err != nil {
			b.Fatal(err)
		}
	}
}
