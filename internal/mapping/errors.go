package mapping

import (
	"fmt"
)

// UnknownTransformError reports a transformation name missing from the registry.
// Suggestions holds the closest registered names.
type UnknownTransformError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownTransformError) Error() string {
	return fmt.Sprintf("unknown transformation %q", e.Name)
}

// UnsupportedNodeKindError reports a kind name that is not recognized.
type UnsupportedNodeKindError struct {
	Kind string
}

func (e *UnsupportedNodeKindError) Error() string {
	return fmt.Sprintf("unsupported node kind %q", e.Kind)
}

// IncompatibleKindsError reports a source kind that cannot feed a sink kind,
// such as a value written as an array.
type IncompatibleKindsError struct {
	Path string
	From string
	To   SinkKind
}

func (e *IncompatibleKindsError) Error() string {
	return fmt.Sprintf("%s at %s cannot be written as %s", e.From, e.Path, e.To)
}

// KindPathMismatchError reports an XML origin whose kind disagrees with
// its path: attributes must end in an "@name" step and other kinds must not.
type KindPathMismatchError struct {
	Path string
	Kind NodeKind
}

func (e *KindPathMismatchError) Error() string {
	if e.Kind == NodeAttribute {
		return fmt.Sprintf("%s path %s does not end in an attribute", e.Kind, e.Path)
	}

	return fmt.Sprintf("%s path %s selects an attribute", e.Kind, e.Path)
}

// MissingItemMapsError reports a sequence or element without item maps.
type MissingItemMapsError struct {
	Path string
	Kind NodeKind
}

func (e *MissingItemMapsError) Error() string {
	return fmt.Sprintf("an item mapping must be provided for %s at %s", e.Kind, e.Path)
}

// SchemaError reports a mapping document that does not match the mapping schema.
type SchemaError struct {
	// Location is the offending instance location, e.g. "mappings[0].from".
	Location string
	Message  string
}

func (e *SchemaError) Error() string {
	if e.Location == "" {
		return "mapping schema: " + e.Message
	}

	return fmt.Sprintf("mapping schema: %s: %s", e.Location, e.Message)
}
