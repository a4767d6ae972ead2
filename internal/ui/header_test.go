package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/state"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"api", fmt.Errorf("search: %w", &flights.APIError{StatusCode: 502, Message: "upstream"}), "API 502"},
		{"invalid", state.ErrInvalidResponse, "INVALID RESPONSE"},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), "TIMEOUT"},
		{"refused", errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "OFFLINE"},
		{"dns", errors.New("dial tcp: lookup api.invalid: no such host"), "HOST NOT FOUND"},
		{"other", errors.New("boom"), "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Fatalf("classifyError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeError(t *testing.T) {
	if got := describeError(&flights.APIError{StatusCode: 400, Message: "Invalid origin"}); got != "Invalid origin" {
		t.Fatalf("describeError(api) = %q", got)
	}
	if got := describeError(state.ErrInvalidResponse); got != "The response structure is invalid." {
		t.Fatalf("describeError(invalid) = %q", got)
	}
	if got := describeError(errors.New("boom")); got != "boom" {
		t.Fatalf("describeError(other) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Cancún", 10, "Cancún"},
		{"Cancún Internacional", 7, "Cancún…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
