package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/polaroid/pkg/io"
	"github.com/matzehuels/polaroid/pkg/layout"
	"github.com/matzehuels/polaroid/pkg/orientation"
)

// inspectCommand creates the inspect command, which shows what export would
// put on the frame without rendering it.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts   runnerOpts
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <photo>",
		Short: "Show a photo's metadata and the caption built from it",
		Long: `Show a photo's metadata and the caption built from it.

The table lists every caption field, its normalized value and whether it is
shown. With --json the same information is written as a document that
'export --from' accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd, &opts, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			out := cmd.OutOrStdout()
			if asJSON {
				return pkgio.WriteJSON(runner.Document(false), out)
			}

			md, display := runner.Metadata(), runner.Display()
			printKeyValue(out, "File", runner.Photo().Name())
			printKeyValue(out, "Orientation", fmt.Sprintf("%d (%s)", runner.Orientation(), orientation.TransformFor(runner.Orientation())))
			printKeyValue(out, "Fields", fmt.Sprintf("%d of %d present", md.Present(), len(md.Keys())))
			fmt.Fprintln(out, renderMetadataTable(md, display))
			fmt.Fprintln(out, StyleTitle.Render("Caption"))
			fmt.Fprintln(out, renderCaption(layout.Assemble(md, display)))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "write a JSON document instead of a table")

	return cmd
}
