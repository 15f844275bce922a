package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to save: %w", errors.New("disk full")),
			expected: "Error: failed to save: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "plain message",
			format:   "backup not found",
			args:     nil,
			expected: "Error: backup not found",
		},
		{
			name:     "formatted message",
			format:   "failed to save: %v",
			args:     []interface{}{errors.New("disk full")},
			expected: "Error: failed to save: disk full",
		},
		{
			name:     "multiple args",
			format:   "habit %q not found in %s",
			args:     []interface{}{"Read", "2024-0"},
			expected: `Error: habit "Read" not found in 2024-0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}
