package app

import (
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "init"},
			expected: "init",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/srv/data"},
			expected: "open /srv/data",
		},
		{
			name:     "op, target, and context",
			err:      &OperationError{Op: "open", Target: "/srv/state/marks", Context: "marks"},
			expected: "open /srv/state/marks (marks)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "open", Target: "/srv/data", Context: "read failed", Err: errors.New("io error")},
			expected: "open /srv/data (read failed): io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", got, tt.expected)
			}
		})
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("start", "watcher", nil).WithContext("inotify limit")
	if err.Context != "inotify limit" {
		t.Errorf("expected context 'inotify limit', got '%s'", err.Context)
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil {
		t.Error("WithContext on nil should return nil")
	}
}

func TestOperationError_Is(t *testing.T) {
	base := errors.New("boom")
	err := NewOperationError("open", "/srv", base)

	if !errors.Is(err, base) {
		t.Error("should match the wrapped error")
	}
	if !errors.Is(err, err) {
		t.Error("should match itself")
	}
	if errors.Is(err, NewOperationError("open", "/srv", base)) {
		t.Error("should not match a different wrapper")
	}
	if errors.Unwrap(err) != base {
		t.Error("Unwrap should return the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Is(base) || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should match nothing")
	}
}
