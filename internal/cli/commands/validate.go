package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsonize/internal/config"
	"jsonize/internal/mapping"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <mapping>",
		Short: "Check a mapping file without converting anything",
		Long: `Check a mapping file against the mapping schema, then resolve its paths,
kinds and transformations. Every problem is reported, not just the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig(cmd.Context())
			w := cmd.OutOrStdout()

			doc, err := mapping.LoadFile(args[0], cfg.ValidateSchema)
			if err != nil {
				return err
			}

			_, diags, err := mapping.Compile(doc, mapping.Builtins())

			for _, d := range diags.Infos {
				_, _ = fmt.Fprintf(w, "info: %s\n", d)
			}

			for _, d := range diags.Warnings {
				_, _ = fmt.Fprintf(w, "warning: %s\n", d)
			}

			if err != nil {
				return fmt.Errorf("%s has %d error(s):\n%w", args[0], len(diags.Errors), err)
			}

			_, _ = fmt.Fprintf(w, "%s: %d mapping(s) ok\n", args[0], len(doc.Mappings))

			return nil
		},
	}
}
