package paths

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPath is matched by every *MalformedPathError.
	ErrMalformedPath = errors.New("malformed path")
	// ErrNotRelative is returned when a relative path is required.
	ErrNotRelative = errors.New("path is not relative")
	// ErrIndexOutOfRange is matched by every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotAttribute is returned by AttributeName on element paths.
	ErrNotAttribute = errors.New("path does not refer to an attribute")
	// ErrNotDescendant is returned by RelativeTo when the prefix does not match.
	ErrNotDescendant = errors.New("path is not a descendant")
	// ErrNamespaceNotFound is matched by every *NamespaceNotFoundError.
	ErrNamespaceNotFound = errors.New("namespace not found")
)

// MalformedPathError reports path text that cannot be parsed.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrMalformedPath.
func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// IndexOutOfRangeError reports a Split position outside [1, Len].
type IndexOutOfRangeError struct {
	Path string
	At   int
	Len  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("split of %q at %d: index out of range [1, %d]", e.Path, e.At, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// NamespaceNotFoundError reports a namespace missing from a Namespaces table.
// Namespace is either a full URI (reverse lookup) or a short prefix.
type NamespaceNotFoundError struct {
	Namespace string
}

func (e *NamespaceNotFoundError) Error() string {
	return fmt.Sprintf("namespace %q not found in namespace table", e.Namespace)
}

// Is reports whether target is ErrNamespaceNotFound.
func (e *NamespaceNotFoundError) Is(target error) bool {
	return target == ErrNamespaceNotFound
}

func malformed(path, reason string) error {
	return &MalformedPathError{Path: path, Reason: reason}
}
