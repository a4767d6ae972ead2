package logtail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`{"level":"debug","message":"lookup"}`,
		`{"level":"info","message":"search complete"}`,
		`{"level":"error","message":"search failed"}`,
		`plain text`,
		`{"message":"no level"}`,
	}
	got := Filter(lines, zerolog.InfoLevel)
	want := lines[1:]
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter(info) = %v, want %v", got, want)
	}
	if got := Filter(lines, zerolog.TraceLevel); len(got) != len(lines) {
		t.Fatalf("Filter(trace) dropped lines: %v", got)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	lines := []string{
		`{"level":"info","offers":3,"time":"2024-03-05T14:30:00Z","message":"search complete"}`,
		`not json at all`,
		`{broken`,
	}
	if err := Render(&buf, lines, false); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"INF", "search complete", "offers=3", "not json at all\n", "{broken\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Render output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, `"message"`) {
		t.Fatalf("Render left raw JSON in output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("Render emitted color codes with color disabled: %q", out)
	}
}
