package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/pipeline"
)

// parseCommand creates the parse command, which prints the syntax tree of a
// pattern as JSON.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "parse <pattern>",
		Short: "Print the syntax tree of a pattern as JSON",
		Long: `Print the syntax tree of a pattern as JSON.

The tree uses the format 'render --ast' reads, so it can be edited by hand
or produced by another parser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, pattern, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	nodes, hit, err := runner.ParseWithCacheInfo(ctx, pipeline.Options{Pattern: pattern, Refresh: refresh, Logger: logger})
	if err != nil {
		return err
	}

	if err := writeAST(nodes, output); err != nil {
		return err
	}
	if output == "" {
		return nil
	}

	prog.done("Parsed "+describe(pipeline.Options{Pattern: pattern}), "nodes", nodeCount(nodes), "cached", hit)
	printFile(output)
	printStats(nodeCount(nodes), 0, hit)
	printNewline()
	printNextStep("Render", appName+" render --ast "+output)
	return nil
}

// writeAST writes nodes as indented JSON to path (or stdout if empty).
func writeAST(nodes []ast.Node, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return ast.WriteJSON(nodes, out)
}

func nodeCount(nodes []ast.Node) int {
	n := 0
	for _, c := range ast.Count(nodes) {
		n += c
	}
	return n
}
