package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"jsonize/internal/config"
	"jsonize/internal/convert"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	var (
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <document.xml> <mapping>",
		Short: "Convert an XML document to JSON",
		Long: `Convert an XML document to JSON using a mapping file (.json, .yaml or .toml).

The result is written to stdout, or to the file given with --output.
With --watch the conversion is repeated whenever the document or the
mapping file changes.`,
		Example: `  jsonize convert book.xml book.yaml
  jsonize convert book.xml book.yaml -o book.json --watch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newConverter(cmd)
			xmlPath, mapPath := args[0], args[1]

			if watch {
				if output == "" {
					return errors.New("--watch requires --output")
				}

				return runWatch(cmd, c, convert.Job{XMLPath: xmlPath, MapPath: mapPath, OutPath: output})
			}

			if output != "" {
				return c.ToJSONFile(xmlPath, mapPath, output)
			}

			maps, err := c.LoadMap(mapPath)
			if err != nil {
				return err
			}

			out, err := c.XMLFileToDict(xmlPath, maps, nil)
			if err != nil {
				return err
			}

			return c.EncodeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the conversion when an input changes")

	return cmd
}

func runWatch(cmd *cobra.Command, c *convert.Converter, job convert.Job) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger := config.GetLogger(cmd.Context())
	logger.Info("watching for changes", "xml", job.XMLPath, "mapping", job.MapPath)

	return c.Watch(ctx, job, convert.DefaultDebounce, func(r convert.Result) {
		if r.Err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "conversion failed: %v\n", r.Err)
			return
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", r.Job.OutPath, r.Duration.Round(time.Microsecond))
	})
}
