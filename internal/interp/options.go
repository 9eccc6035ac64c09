package interp

import (
	"log/slog"

	"jsonize/internal/paths"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithIgnoreEmpty controls absent source nodes: when set (the default) the
// write is skipped, otherwise null or an empty array is written.
func WithIgnoreEmpty(ignore bool) Option {
	return func(in *Interpreter) {
		in.ignoreEmpty = ignore
	}
}

// WithNamespaces sets the table prefixed names in source paths are resolved
// against. By default the table declared on the document root is used.
func WithNamespaces(ns paths.Namespaces) Option {
	return func(in *Interpreter) {
		in.namespaces = ns.Clone()
	}
}

// WithLogger sets the logger. Mapping steps are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.logger = logger
		}
	}
}
