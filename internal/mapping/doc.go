// Package mapping defines NodeMaps, the compiled form of a jsonize mapping
// document, and everything needed to build them: node and sink kinds, the
// transform registry, and loading of declarative documents.
//
// # Document format
//
// A mapping document is an ordered list of records. JSON documents are a
// bare list; YAML and TOML documents put the list under "mappings":
//
//	mappings:
//	  - from: {path: /book/@id, type: attribute}
//	    to: {path: $.id, type: integer}
//	  - from: {path: /book/title, type: value}
//	    to: {path: $.title, type: string}
//	    transformation: strip
//	  - from: {path: /book/author, type: sequence}
//	    to: {path: $.authors, type: array}
//	    itemMappings:
//	      - from: {path: ., type: value}
//	        to: {path: "@.name", type: string}
//
// The leading character of from.path selects the source: "/" and "." address
// the XML document, "$" and "@" address a JSON-like document so that the
// output of one mapping can feed another.
//
// # Compilation
//
// Compile parses every path, checks that source and sink kinds fit together
// and resolves transformation names against a TransformRegistry. Problems are
// collected as diagnostics; a document with any error yields no NodeMaps, so
// a bad mapping never produces partial output.
//
// A sequence declared without item mappings maps the value of each match
// directly into the array. An element must declare its item mappings.
package mapping
