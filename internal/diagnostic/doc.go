// Package diagnostic collects errors, warnings and notes produced while a
// mapping document is compiled.
//
// Key capabilities:
//   - Record location of every problem ("mappings[1].itemMappings[0]")
//   - Suggestions for misspelled transform names
//   - One joined error whose typed causes remain matchable
package diagnostic
