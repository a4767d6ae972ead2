package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLines is how many trailing lines the logs command shows.
const DefaultLines = 200

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines reads the whole file. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return tail(file, maxLines)
}

func tail(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Filter keeps JSON log lines at or above threshold. Lines that are not JSON
// events, or carry no level, are kept.
func Filter(lines []string, threshold zerolog.Level) []string {
	if threshold <= zerolog.TraceLevel {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var event struct {
			Level string `json:"level"`
		}
		if json.Unmarshal([]byte(line), &event) != nil || event.Level == "" {
			out = append(out, line)
			continue
		}
		lvl, err := zerolog.ParseLevel(event.Level)
		if err != nil || lvl >= threshold {
			out = append(out, line)
		}
	}
	return out
}

// Render writes lines to w, formatting zerolog JSON events the way the
// console logger does. Other lines are written unchanged.
func Render(w io.Writer, lines []string, color bool) error {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: time.DateTime}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			if _, err := cw.Write([]byte(trimmed)); err == nil {
				continue
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}
	}
	return nil
}
