package library

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPathLength is the longest path accepted from any input boundary
const MaxPathLength = 4096

var (
	ErrEmptyPath   = errors.New("empty path")
	ErrPathTooLong = errors.New("path too long")
	ErrInvalidPath = errors.New("path contains a NUL byte")
)

// ValidatePath rejects paths that no loader could open. It is applied to
// command line arguments, dialog results and dropped files alike.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return ErrEmptyPath
	case len(path) > MaxPathLength:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPathTooLong, len(path), MaxPathLength)
	case strings.IndexByte(path, 0) >= 0:
		return ErrInvalidPath
	}
	return nil
}
