// Package nodelink renders regex syntax trees as node-link diagrams.
//
// # Overview
//
// Where the railroad view shows how a pattern is matched left to right, the
// node-link view shows how it was parsed: every tree node becomes a box and
// edges point from parent to child. It is the debugging companion of the
// railroad engine (`regexrail tree`).
//
// # Usage
//
//	nodes, err := parse.Parse(`a(b|c)*`)
//	dot := nodelink.ToDOT(nodes, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
