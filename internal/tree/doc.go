// Package tree reads and writes values inside JSON-like documents addressed
// by paths.SinkPath.
//
// Documents are plain Go values: map[string]any for objects, []any for
// arrays and scalars for everything else, as produced by encoding/json.
// Write is pure: it returns an updated document and leaves its input
// untouched, copying only the containers along the written path.
//
// Write follows a fixed decision order:
//
//  1. the target already holds an array: the value is appended;
//  2. the parent exists and is an object (or an array holding the index):
//     the value is stored, replacing any previous one;
//  3. an intermediate object is missing: it is created empty and the
//     write is retried one level deeper;
//  4. an intermediate value exists but cannot be indexed: the write fails
//     with a NotIndexableError naming that value's path.
package tree
