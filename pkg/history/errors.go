// pkg/history/errors.go
package history

import "errors"

var (
	// ErrInvalidCapacity is returned when the store is opened with a non-positive capacity
	ErrInvalidCapacity = errors.New("history capacity must be at least 1")

	// ErrEmptyPath is returned when inserting an empty path
	ErrEmptyPath = errors.New("path is empty")

	// ErrInvalidPath is returned when a path cannot be stored on a single line
	ErrInvalidPath = errors.New("path contains a line break")

	// ErrClosed is returned when inserting into a closed store
	ErrClosed = errors.New("history store is closed")
)
