package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapping(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{InvalidArgument("limit must be >= 1, got %d", 0), ErrInvalidArgument},
		{CorruptState("bundle %q missing", "lexical"), ErrCorruptState},
		{ProviderFailure("status %d", 503), ErrProviderFailure},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("%v does not wrap %v", tt.err, tt.sentinel)
		}
	}
}

func TestMessagesCarryDetail(t *testing.T) {
	err := InvalidArgument("limit must be >= 1, got %d", 0)
	if !strings.Contains(err.Error(), "got 0") {
		t.Errorf("message lost detail: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "invalid argument") {
		t.Errorf("message lost kind: %q", err.Error())
	}
}

func TestKindsAreDistinct(t *testing.T) {
	if errors.Is(InvalidArgument("x"), ErrCorruptState) {
		t.Error("InvalidArgument must not match ErrCorruptState")
	}
	if errors.Is(ProviderFailure("x"), ErrInvalidArgument) {
		t.Error("ProviderFailure must not match ErrInvalidArgument")
	}
}
