// Package errs defines the error kinds surfaced by the retrieval core.
//
// InvalidArgument and CorruptState abort the current operation and are never
// retried. ProviderFailure on an optional step (query enhancement, reranking)
// is handled by falling back and continuing; on a mandatory step (corpus or
// query embedding) it is fatal to that call.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed input: multi-token term lookups,
	// queries that normalize to zero terms, non-positive limits.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorruptState marks a persisted cache bundle that is missing,
	// unreadable, or inconsistent with the current corpus.
	ErrCorruptState = errors.New("corrupt state")

	// ErrProviderFailure marks a failed or unparseable response from an
	// external embedding, LLM, or cross-encoder provider.
	ErrProviderFailure = errors.New("provider failure")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// CorruptState wraps ErrCorruptState with a formatted message.
func CorruptState(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptState}, args...)...)
}

// ProviderFailure wraps ErrProviderFailure with a formatted message.
func ProviderFailure(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProviderFailure}, args...)...)
}
