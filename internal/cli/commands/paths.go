package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"jsonize/internal/infer"
	"jsonize/internal/xmldoc"
)

// NewPathsCommand creates the paths command.
func NewPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths <document.xml>",
		Short: "List every element and attribute path of an XML document",
		Long: `List the path of every element and attribute of an XML document in
document order, with the kind inference assigns to it. Repeated elements
carry their 1-based index and are listed as sequences.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := xmldoc.ParseFile(args[0])
			if err != nil {
				return err
			}

			locs, err := doc.Locations(newConverter(cmd).Table(doc))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Path", "Kind"})

			for i, loc := range locs {
				t.AppendRow(table.Row{i + 1, loc.String(), infer.Classify(loc).String()})
			}

			t.Render()
			_, _ = fmt.Fprintf(w, "(%d paths)\n", len(locs))

			return nil
		},
	}
}
