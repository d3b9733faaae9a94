package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/observability"
	"github.com/matzehuels/regexrail/pkg/parse"
)

// Parse turns a pattern into a syntax tree, reporting the stage to the
// pipeline hooks.
func Parse(ctx context.Context, pattern string) ([]ast.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, pattern)

	start := time.Now()
	nodes, err := parse.Parse(pattern)
	hooks.OnParseComplete(ctx, pattern, countNodes(nodes), time.Since(start), err)
	return nodes, err
}
