package errors

import (
	"errors"
	"fmt"
)

// Standard errors
var (
	// ErrInvalidProfile is returned when a customer profile is missing
	// required identity fields. Profile validation fails fast at agent
	// construction and is the only fatal input error in the core.
	ErrInvalidProfile = errors.New("invalid customer profile")

	// ErrGenerationFailed is returned when the external text-generation
	// collaborator failed or returned unusable output. Callers recover it
	// into a fixed user-visible fallback reply, never a crash.
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrMemoryCapacity indicates the short-term memory buffer exceeded its
	// capacity after truncation. It signals a bug, not a runtime condition.
	ErrMemoryCapacity = errors.New("short-term memory capacity invariant violated")

	// ErrDimensionMismatch is returned when a vector's length does not match
	// the index dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrUnknownProduct is returned when a product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrUnknownPhase is returned when a phase name cannot be parsed.
	ErrUnknownPhase = errors.New("unknown tet phase")

	// ErrSessionNotFound is returned by session stores when no snapshot
	// exists for the requested session.
	ErrSessionNotFound = errors.New("session snapshot not found")
)

// Wrap wraps an error with additional context
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience function that wraps errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target, and if so, sets
// target to that error value and returns true. Otherwise, it returns false.
// This is a convenience function that wraps errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
