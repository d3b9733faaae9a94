// Package railroad lays out regular-expression syntax trees as railroad
// diagrams.
//
// # Overview
//
// The engine walks an [ast.Node] tree and turns every node into a [Block]: a
// bounding box, the x coordinates where the main connector line enters and
// leaves it, and the flat list of drawing [Primitive] values that make it up.
// Composite nodes (choices, groups, quantifiers) lay their children out first
// and then move the children's primitives into place with a single
// translation. The top-level result is a [Diagram]: every primitive of the
// pattern in final canvas coordinates, plus the canvas size.
//
//	eng := railroad.New(railroad.DefaultOptions(), fonts.MustMeasurer(14))
//	d, err := eng.Layout(nodes)
//
// # Coordinates
//
// The origin is the top-left corner and y grows downward. Each builder is
// handed the position (x, y) where its entry connector should start: x is the
// left edge, y the height of the main line. Builders that are taller than a
// single text box extend both above and below y.
//
// # Primitives
//
// Five primitive variants exist: circles (start and end markers), solid and
// dashed rounded rectangles, centred text, and paths made of M, H, V, Q and C
// commands. Every variant knows how to translate itself, so moving a subtree
// is a loop over its primitives.
//
// # Metrics
//
// Text is measured once per [Engine] through a [Measurer]. The engine only
// needs an average character advance and line height, obtained by measuring
// a fixed two-line sample. [FixedMeasurer] provides exact values for tests
// and headless use; the fonts package provides a TrueType-backed measurer.
//
// # Elision
//
// Sub-expressions that can only match the empty string (empty alternatives,
// non-capturing groups of such, {0,0} quantifiers) collapse to a short plain
// connector of width [ElideLength] and no height.
//
// # Drawing
//
// [Draw] is the end-to-end entry: it clears a [Surface], parses the source
// with the injected [Parser], lays it out, sizes the surface and hands over
// the primitives. An empty source clears the surface and draws nothing.
package railroad
