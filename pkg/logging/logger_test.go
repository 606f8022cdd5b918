package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type testID string

func (id testID) String() string { return string(id) }

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
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"WARNING", WarnLevel},
		{"warn", WarnLevel},
		{"Error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDomainFields(t *testing.T) {
	if f := ClassID(testID("c-1")); f.Key != "class_id" || f.Value != "c-1" {
		t.Errorf("ClassID() = %+v", f)
	}
	if f := Member("method", "run"); f.Key != "method" || f.Value != "run" {
		t.Errorf("Member() = %+v", f)
	}
	if f := Duration("latency", 5*time.Second); f.Value != "5s" {
		t.Errorf("Duration() = %+v", f)
	}
	if f := Error(nil); f.Key != "error" || f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error() = %+v", f)
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("attribute committed", ClassID(testID("c-1")), Member("attribute", "attr1"), Index(0))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "attribute committed" {
		t.Errorf("Message = %v", entry.Message)
	}
	if entry.Fields["class_id"] != "c-1" || entry.Fields["attribute"] != "attr1" {
		t.Errorf("Fields = %v", entry.Fields)
	}
	if entry.Fields["index"] != float64(0) { // JSON unmarshals numbers as float64
		t.Errorf("index field = %v, want 0", entry.Fields["index"])
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

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	var first LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if first.Level != "WARN" {
		t.Errorf("First entry level = %v, want WARN", first.Level)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("store"))

	child.Info("replaced", Operation("replace"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["component"] != "store" || entry.Fields["operation"] != "replace" {
		t.Errorf("Fields = %v", entry.Fields)
	}

	// Raising the parent level silences the child as well
	buf.Reset()
	logger.SetLevel(ErrorLevel)
	child.Info("dropped")
	if buf.Len() != 0 {
		t.Error("Expected child to follow parent level")
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v, want ERROR", child.GetLevel())
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	logger.Info("plain")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("Expected fields to be omitted, got %s", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classdiagram.log")
	logger, closer, err := NewFileLogger(path, InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %s", data)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	StartTimer(logger, "commit", Operation("commit_attribute")).End(Count(2))
	StartTimer(logger, "commit", Operation("commit_method")).EndError(errors.New("duplicate"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(lines))
	}

	var ok, failed LogEntry
	json.Unmarshal([]byte(lines[0]), &ok)
	json.Unmarshal([]byte(lines[1]), &failed)

	if ok.Level != "DEBUG" || ok.Fields["latency"] == nil || ok.Fields["count"] != float64(2) {
		t.Errorf("End() entry = %+v", ok)
	}
	if failed.Level != "WARN" || failed.Fields["error"] != "duplicate" {
		t.Errorf("EndError() entry = %+v", failed)
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	defer SetDefaultLogger(nil)

	DefaultLogger().Info("test message")
	if buf.Len() == 0 {
		t.Error("Expected output from default logger")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	if logger.With(Component("x")) == nil {
		t.Error("With() returned nil")
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{Bool("discarded_draft", true), "discarded_draft", true},
		{Any("loc", map[string]float64{"x": 1}), "loc", map[string]float64{"x": 1}},
		{Uint64("dropped", 3), "dropped", uint64(3)},
		{Version(7), "version", uint64(7)},
		{Latency(1500 * time.Millisecond), "latency", "1.5s"},
		{Member("attribute", "x"), "attribute", "x"},
		{ClassID(testID("c1")), "class_id", "c1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if !reflect.DeepEqual(tt.field.Value, tt.value) {
				t.Errorf("Value = %#v, want %#v", tt.field.Value, tt.value)
			}
		})
	}
}
