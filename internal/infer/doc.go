// Package infer derives a mapping document from the shape of an XML
// document alone.
//
// Every element and attribute location is classified as a value, an
// attribute or a sequence (a location that carries a repetition index).
// Sequences are then resolved innermost first: each one absorbs the leaves
// below it as item maps and becomes a leaf of its enclosing sequence. The
// remaining leaves form the top-level NodeMaps.
//
// Rendering follows three conventions, all configurable through Options:
//
//	<title>Dune</title>       -> $.book.title.value  (ValueKey "value")
//	<book id="7">             -> $.book.id           (AttributeTag "")
//	<dc:title>                -> $.book.dc:title     (KeepNamespaces true)
//
// Scalars are inferred with mapping.SinkInfer, sequences become arrays.
package infer
