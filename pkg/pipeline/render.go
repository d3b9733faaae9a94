package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/observability"
	"github.com/matzehuels/regexrail/pkg/railroad"
	"github.com/matzehuels/regexrail/pkg/render/nodelink"
	"github.com/matzehuels/regexrail/pkg/render/sink"
)

// Render generates output artifacts in the requested formats, reporting
// the stage to the pipeline hooks. opts must have passed ValidateForRender.
func Render(ctx context.Context, nodes []ast.Node, d *railroad.Diagram, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	var artifacts map[string][]byte
	var err error
	if opts.IsTree() {
		artifacts, err = renderTree(ctx, nodes, opts)
	} else {
		artifacts, err = renderRailroad(ctx, d, opts)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// renderRailroad generates railroad diagram outputs.
func renderRailroad(ctx context.Context, d *railroad.Diagram, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(d, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
			if opts.Background != "" {
				pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
			}
			data, err = sink.RenderPNG(d, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, d, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(d, sink.WithJSONPattern(opts.Pattern), sink.WithJSONTheme(opts.Theme.Hash()))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported railroad format: %s", format)
		}

		if err != nil {
			return nil, renderErr(format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree generates node-link outputs of the syntax tree.
func renderTree(ctx context.Context, nodes []ast.Node, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(nodes, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, renderErr(format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Pattern != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Pattern))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

// renderErr keeps coded errors (a missing converter is UNSUPPORTED) and
// marks anything else internal.
func renderErr(format string, err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
}
