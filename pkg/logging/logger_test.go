package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()

	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{"Info", InfoLevel, false},
		{"", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"WARNING", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"NodeID", NodeID(7), "node_id", uint64(7)},
		{"Module", Module(3), "module", 3},
		{"Metric", Metric("participation_coefficient"), "metric", "participation_coefficient"},
		{"Policy", Policy("zero"), "policy", "zero"},
		{"RunID", RunID("abc"), "run_id", "abc"},
		{"Count", Count(12), "count", 12},
		{"Component", Component("algorithms"), "component", "algorithms"},
		{"Float64", Float64("z", 1.5), "z", 1.5},
		{"Latency", Latency(2 * time.Second), "latency", "2s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"ErrorNil", Error(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s = %+v, want {Key:%v Value:%v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("module scored", Module(2), Count(5))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "module scored" {
		t.Errorf("Message = %v, want 'module scored'", entry.Message)
	}
	if entry.Fields["module"] != float64(2) { // JSON numbers decode as float64
		t.Errorf("Fields[module] = %v, want 2", entry.Fields["module"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Unexpected levels %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("algorithms"), Metric("within_module_degree"))

	child.Info("computed", Metric("override"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Fields["component"] != "algorithms" {
		t.Errorf("component field = %v, want algorithms", entries[0].Fields["component"])
	}
	if entries[0].Fields["metric"] != "override" {
		t.Errorf("metric field = %v, want call-site override", entries[0].Fields["metric"])
	}

	buf.Reset()
	logger.SetLevel(ErrorLevel)
	child.Info("filtered")
	if buf.Len() != 0 {
		t.Error("Expected child to follow parent's level change")
	}
	if child.Enabled(WarnLevel) {
		t.Error("Expected WarnLevel disabled on child at ErrorLevel")
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("message without fields")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, exists := entry["fields"]; exists {
		t.Error("Expected fields key to be omitted when empty")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "analysis complete", RunID("r1"))
	elapsed := timer.End(Count(4))
	if elapsed < 0 {
		t.Errorf("Elapsed = %v, want non-negative", elapsed)
	}

	timer = StartTimer(logger, "analysis failed", RunID("r2"))
	timer.EndError(errors.New("zero degree"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].Fields["latency"] == nil || entries[0].Fields["count"] != float64(4) {
		t.Errorf("Unexpected End fields %v", entries[0].Fields)
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "zero degree" {
		t.Errorf("Unexpected EndError entry %+v", entries[1])
	}
	if entries[1].Fields["run_id"] != "r2" {
		t.Errorf("run_id = %v, want r2", entries[1].Fields["run_id"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored", Count(1))
	if logger.Enabled(ErrorLevel) {
		t.Error("NopLogger should report every level disabled")
	}
	if logger.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Module(i), Count(42))
	}
}

func BenchmarkJSONLogger_InfoFiltered(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, ErrorLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Module(i), Count(42))
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"WARN", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.value)
			if got := LevelFromEnv(); got != tt.expected {
				t.Errorf("LevelFromEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	first := DefaultLogger()
	if first == nil {
		t.Fatal("DefaultLogger returned nil")
	}
	if second := DefaultLogger(); second != first {
		t.Error("DefaultLogger should return the same logger on every call")
	}
	if _, ok := first.(*JSONLogger); !ok {
		t.Errorf("DefaultLogger returned %T, want *JSONLogger", first)
	}
}
