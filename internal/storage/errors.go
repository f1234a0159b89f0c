package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/intima/internal/logger"
)

var (
	// ErrUsernameTaken is returned when a user is created with a username that already exists
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound is returned when a row references a user that does not exist
	ErrUserNotFound = errors.New("user not found")
	// ErrEmotionNotFound is returned when a log references an emotion that does not exist
	ErrEmotionNotFound = errors.New("emotion not found")
	// ErrLogNotFound is returned when an emotion references a log that does not exist
	ErrLogNotFound = errors.New("log not found")
	// ErrInvalidInput is returned before touching the database when a required field is empty
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage covers every other persistence failure. The cause is logged, not returned.
	ErrStorage = errors.New("storage error")
)

// Fail logs the driver error behind a failed operation and returns ErrStorage wrapped with
// the operation name only, so storage internals never reach the caller.
func Fail(op string, err error) error {
	logger.StorageFailure(op, err)
	return fmt.Errorf("%s: %w", op, ErrStorage)
}

// Kind wraps one of the sentinel errors with the operation name
func Kind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// IsKnown reports whether err carries one of the store's error kinds
func IsKnown(err error) bool {
	for _, kind := range []error{ErrUsernameTaken, ErrUserNotFound, ErrEmotionNotFound, ErrLogNotFound, ErrInvalidInput, ErrStorage} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
