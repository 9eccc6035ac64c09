// Package paths implements the two path algebras used by the converter.
//
// A SourcePath addresses nodes inside an XML document:
//
//	/catalog/book[2]/@id      absolute, 1-based repetition index, attribute
//	./author                  relative to a context element
//	/adrmsg:Message/gml:name  namespace-qualified names
//
// A SinkPath addresses values inside a JSON-like document built from
// map[string]any and []any:
//
//	$.store.book[0].title     absolute, 0-based index
//	@.items[1:3]              relative, slice with optional start/stop/step
//
// Both families share the same algebra: the root marker is the first
// segment, Split divides the segment list and prefixes the suffix with the
// relative marker, and Append re-joins a relative suffix. For every valid
// at, p.Split(at) followed by prefix.Append(suffix) reproduces p.
//
// Path values are immutable. Every operation returns a new value, and
// equality compares parsed structure rather than raw text.
package paths
