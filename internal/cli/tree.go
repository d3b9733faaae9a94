package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/pipeline"
)

// treeCommand creates the tree command, which draws the syntax tree of a
// pattern as a node-link graph with Graphviz.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    renderFlags
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree <pattern>",
		Short: "Draw the syntax tree of a pattern",
		Long: `Draw the syntax tree of a pattern as a node-link graph.

Useful to see how a pattern was read: which quantifier binds to what, how
alternatives split and where groups begin. The dot format prints the
Graphviz source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Pattern = args[0]
			opts.View = pipeline.ViewTree
			opts.Detailed = detailed
			opts.Refresh = flags.refresh
			opts.Formats = parseFormats(flags.formats, []string{pipeline.FormatSVG})
			for _, f := range opts.Formats {
				if f == pipeline.FormatJSON {
					return errors.New(errors.ErrCodeInvalidFormat, "the tree view has no json format; use 'parse' for the tree itself")
				}
			}
			return c.runRender(cmd.Context(), opts, flags, "tree")
		},
	}

	flags.register(cmd, "output format(s): svg (default), png, pdf, dot (comma-separated)", pipeline.TreeFormats)
	cmd.Flags().BoolVar(&detailed, "detailed", false, "list the members of character classes")

	return cmd
}
