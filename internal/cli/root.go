// Package cli provides the command-line interface for jsonize.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsonize/internal/cli/commands"
	"jsonize/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "jsonize",
		Short: "Convert XML documents to JSON with declarative mappings",
		Long: `jsonize converts XML documents into JSON driven by a mapping document
that binds XML paths to JSON paths. Mappings can be written by hand in JSON,
YAML or TOML, or inferred from a sample document.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if cfg.File != "" {
				logger.Debug("using config file", "file", cfg.File)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./jsonize.yaml)")
	flags.StringToString("ns", nil, "namespace prefixes, e.g. --ns dc=http://purl.org/dc/elements/1.1/")
	flags.Bool("ignore-empty", true, "skip absent source nodes instead of writing null")
	flags.String("value-key", config.DefaultValueKey, "key for element text in inferred mappings")
	flags.String("attribute-tag", "", "prefix for attribute names in inferred mappings")
	flags.Bool("keep-namespaces", true, "keep namespace prefixes in inferred JSON names")
	flags.String("pretty", config.DefaultPretty, "indent JSON output (auto|always|never)")
	flags.Int("workers", 0, "parallel conversions in batch mode (default: number of CPUs)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (text|json)")
	flags.Bool("validate-schema", true, "validate mapping files against the mapping schema")

	_ = rootCmd.RegisterFlagCompletionFunc("pretty", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.PrettyAuto, config.PrettyAlways, config.PrettyNever}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewInferCommand())
	rootCmd.AddCommand(commands.NewPathsCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
