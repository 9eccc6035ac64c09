package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsonize/internal/config"
	"jsonize/internal/convert"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <mapping> <glob>",
		Short: "Convert many XML documents with one mapping",
		Long: `Convert every XML document matching a glob pattern with one mapping file.
Documents are converted in parallel, one job per document, with at most
--workers jobs at a time. Each result is written to --out-dir with the
".json" extension. A failed document does not stop the others.`,
		Example: `  jsonize batch books.yaml 'in/*.xml' --out-dir out --workers 4`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig(cmd.Context())

			jobs, err := convert.Jobs(args[1], args[0], outDir)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				return fmt.Errorf("no documents match %q", args[1])
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			results, err := newConverter(cmd).Batch(cmd.Context(), jobs, cfg.Workers)

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "converted %d of %d documents\n", len(results)-failed, len(results))

			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the JSON output")

	return cmd
}
