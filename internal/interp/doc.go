// Package interp applies compiled NodeMaps to a source document and builds
// the sink document.
//
// The sink is threaded through every NodeMap as an immutable value: each
// step returns an updated copy built with tree.Write, so a failed job never
// leaves partial output behind.
package interp
