// Package sink provides output format renderers for railroad diagrams.
//
// # Overview
//
// A "sink" turns a positioned [railroad.Diagram] into bytes. This package
// provides renderers for:
//
//   - SVG: standalone vector document ([RenderSVG], [SVGCanvas])
//   - PNG: raster image drawn with gg ([RenderPNG])
//   - PDF: print-ready output via rsvg-convert ([RenderPDF])
//   - JSON: the primitive list for external tools ([RenderJSON])
//
// # SVG Output
//
// [SVGCanvas] implements [railroad.Surface], so it can be handed straight to
// [railroad.Engine.Draw]:
//
//	canvas := sink.NewSVGCanvas()
//	if err := engine.Draw(canvas, `a(b|c)*`, parse.Parser{}); err != nil {
//	    return err
//	}
//	svg := canvas.Bytes(sink.WithTitle(`a(b|c)*`))
//
// Text is centred on its anchor with text-anchor="middle" and
// dominant-baseline="central"; multi-line labels become tspans.
//
// # PNG Output
//
// [RenderPNG] strokes every primitive with github.com/fogleman/gg at a scale
// factor (2.0 by default) and sets labels in Go Mono from [fonts.Face].
//
// [railroad.Diagram]: github.com/matzehuels/regexrail/pkg/railroad.Diagram
// [railroad.Surface]: github.com/matzehuels/regexrail/pkg/railroad.Surface
// [railroad.Engine.Draw]: github.com/matzehuels/regexrail/pkg/railroad.Engine.Draw
// [fonts.Face]: github.com/matzehuels/regexrail/pkg/fonts.Face
package sink
