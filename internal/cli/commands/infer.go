package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"jsonize/internal/mapping"
)

// NewInferCommand creates the infer command.
func NewInferCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "infer <document.xml>",
		Short: "Infer a mapping from an XML document",
		Long: `Infer a mapping that reproduces the structure of an XML document in JSON.

Repeated elements become arrays, attributes and element text become fields.
Naming is controlled by --value-key, --attribute-tag and --keep-namespaces.
The mapping is written to stdout in --format, or to --output in the format
given by its extension.`,
		Example: `  jsonize infer book.xml -o book.yaml
  jsonize infer book.xml --value-key text --attribute-tag @ --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newConverter(cmd)

			if output != "" {
				return c.InferMapFile(args[0], output, inferOptions(cmd))
			}

			doc, err := c.InferMap(args[0], inferOptions(cmd))
			if err != nil {
				return err
			}

			data, err := mapping.Marshal(doc, mapping.Format(format))
			if err != nil {
				return err
			}

			if !bytes.HasSuffix(data, []byte("\n")) {
				data = append(data, '\n')
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output mapping file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(mapping.FormatJSON), "stdout format (json|yaml|toml)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(mapping.FormatJSON), string(mapping.FormatYAML), string(mapping.FormatTOML)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
