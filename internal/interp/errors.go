package interp

import (
	"errors"
	"fmt"

	"jsonize/internal/mapping"
)

// ErrUnsupportedSource is returned when the source value does not fit the
// origin of a NodeMap, such as a JSON value given to an XML origin.
var ErrUnsupportedSource = errors.New("unsupported source document")

// CastError reports source text that cannot be cast to the sink kind.
type CastError struct {
	Path string
	Text string
	Kind mapping.SinkKind
	Err  error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("the node at %s with value %q is not castable into %s", e.Path, e.Text, e.Kind)
}

func (e *CastError) Unwrap() error {
	return e.Err
}

// TransformError reports a transformation that failed or returned a value of
// the wrong shape.
type TransformError struct {
	Name string
	Path string
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transformation %q at %s: %v", e.Name, e.Path, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
