// Package render converts rendered diagrams between output formats.
//
// # Overview
//
// Railroad diagrams are rendered by the [sink] subpackage and syntax trees
// by the [nodelink] subpackage. Both produce SVG natively; this package
// turns SVG into PDF or PNG with the external rsvg-convert tool (from
// librsvg).
//
//	svg := sink.RenderSVG(diagram)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Railroad PNGs do not need rsvg-convert: [sink.RenderPNG] rasterises the
// primitives directly.
//
// [sink]: github.com/matzehuels/regexrail/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/regexrail/pkg/render/sink.RenderPNG
// [nodelink]: github.com/matzehuels/regexrail/pkg/render/nodelink
package render
