package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("object not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsNotFound reports whether err represents a missing object. Callers use
// this to tell "first run / not yet copied" apart from real failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapError adds bucket and operation context to an error
func WrapError(bucket, operation string, err error) error {
	return fmt.Errorf("%s (bucket %s): %w", operation, bucket, err)
}
