// Package commands implements the jsonize subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"jsonize/internal/config"
	"jsonize/internal/convert"
	"jsonize/internal/infer"
	"jsonize/internal/paths"
)

// newConverter builds a Converter from the config stored in the command
// context.
func newConverter(cmd *cobra.Command) *convert.Converter {
	cfg := config.GetConfig(cmd.Context())

	opts := []convert.Option{
		convert.WithIgnoreEmpty(cfg.IgnoreEmpty),
		convert.WithValidation(cfg.ValidateSchema),
		convert.WithIndent(cfg.Indent(cmd.OutOrStdout())),
		convert.WithLogger(config.GetLogger(cmd.Context())),
	}

	if len(cfg.Namespaces) > 0 {
		opts = append(opts, convert.WithNamespaces(paths.Namespaces(cfg.Namespaces)))
	}

	return convert.New(opts...)
}

// inferOptions returns the naming options of inferred mappings.
func inferOptions(cmd *cobra.Command) infer.Options {
	cfg := config.GetConfig(cmd.Context())

	return infer.Options{
		ValueKey:       cfg.ValueKey,
		AttributeTag:   cfg.AttributeTag,
		KeepNamespaces: cfg.KeepNamespaces,
	}
}
