package tree

import (
	"errors"
	"fmt"

	"jsonize/internal/paths"
)

var (
	// ErrPathNotFound is matched by every *PathNotFoundError.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotIndexable is matched by every *NotIndexableError.
	ErrNotIndexable = errors.New("value is not indexable")
)

// PathNotFoundError reports a key or index that does not exist.
// Path is the sub-path ending at the missing segment.
type PathNotFoundError struct {
	Path paths.SinkPath
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %s does not exist", e.Path)
}

// Is reports whether target is ErrPathNotFound.
func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// NotIndexableError reports a value that cannot be indexed by the next
// segment. Read sets Path to the sub-path ending at the segment that could
// not be applied; Write sets it to the container that rejected the write.
type NotIndexableError struct {
	Path paths.SinkPath
}

func (e *NotIndexableError) Error() string {
	return fmt.Sprintf("value at %s is not indexable", e.Path)
}

// Is reports whether target is ErrNotIndexable.
func (e *NotIndexableError) Is(target error) bool {
	return target == ErrNotIndexable
}
