package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/fonts"
	"github.com/matzehuels/regexrail/pkg/observability"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// Text measurers.
const (
	MetricsFont  = "font"
	MetricsFixed = "fixed"
)

// NewMeasurer returns the measurer named by metrics for text of fontSize
// pixels.
func NewMeasurer(metrics string, fontSize float64) (railroad.Measurer, error) {
	switch metrics {
	case MetricsFont, "":
		m, err := fonts.NewMeasurer(fontSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font metrics")
		}
		return m, nil
	case MetricsFixed:
		return railroad.DefaultMeasurer(fontSize), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown metrics source %q", metrics)
}

// Layout positions nodes with theme and m, reporting the stage to the
// pipeline hooks.
func Layout(ctx context.Context, nodes []ast.Node, theme railroad.Options, m railroad.Measurer) (*railroad.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, countNodes(nodes))

	start := time.Now()
	d, err := railroad.New(theme, m).Layout(nodes)
	count := 0
	if d != nil {
		count = len(d.Items)
	}
	hooks.OnLayoutComplete(ctx, count, time.Since(start), err)
	return d, err
}
