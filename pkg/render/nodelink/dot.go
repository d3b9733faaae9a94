package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/railroad"
	"github.com/matzehuels/regexrail/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists the members of character classes in node labels.
	// When false, only the kind and quantifier are shown.
	Detailed bool
}

// ToDOT converts a syntax tree to Graphviz DOT. The pattern itself is the
// root; every node points at its children, and the branches of a choice
// hang off it through edges labelled with the branch number.
//
// Groups are drawn dashed and lookahead asserts with a double border so
// the nesting reads the same way as in the railroad view.
func ToDOT(nodes []ast.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.WriteString("  \"root\" [label=\"pattern\", shape=circle, style=solid];\n")

	w := dotWriter{buf: &buf, opts: opts}
	w.sequence("root", nodes, "")

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

func (w *dotWriter) sequence(parent string, nodes []ast.Node, edgeLabel string) {
	for _, n := range nodes {
		id := w.node(n)
		if edgeLabel != "" {
			fmt.Fprintf(w.buf, "  %q -> %q [label=%q];\n", parent, id, edgeLabel)
		} else {
			fmt.Fprintf(w.buf, "  %q -> %q;\n", parent, id)
		}
		for i, b := range n.Branches {
			w.sequence(id, b, strconv.Itoa(i+1))
		}
		w.sequence(id, n.Sub, "")
	}
}

func (w *dotWriter) node(n ast.Node) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, w.opts.Detailed)), ", "))
	return id
}

func fmtLabel(n ast.Node, detailed bool) string {
	var label string
	switch n.Kind {
	case ast.KindExact:
		label = railroad.Printable(n.Chars)
	case ast.KindCharset:
		label = charsetLabel(n, detailed)
	case ast.KindGroup:
		label = "group"
		if n.Capturing() {
			label = "group #" + strconv.Itoa(n.Num)
		}
	case ast.KindBackref:
		label = "backref #" + strconv.Itoa(n.Num)
	case ast.KindAssert:
		label = string(n.AssertionType)
	case ast.KindChoice:
		label = "choice"
	default:
		label = string(n.Kind)
	}
	if n.Repeat != nil {
		label += "\n" + n.Repeat.String()
	}
	return label
}

func charsetLabel(n ast.Node, detailed bool) string {
	label := "charset"
	if n.Exclude {
		label = "not charset"
	}
	if !detailed {
		return label
	}
	var parts []string
	for _, c := range n.Classes {
		parts = append(parts, railroad.ClassName(c))
	}
	for _, r := range n.Ranges {
		if rs := []rune(r); len(rs) == 2 {
			r = railroad.Printable(string(rs[0])) + "-" + railroad.Printable(string(rs[1]))
		}
		parts = append(parts, r)
	}
	for _, r := range n.Chars {
		parts = append(parts, railroad.Printable(string(r)))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n ast.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Kind == ast.KindGroup:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Kind == ast.KindAssert && n.AssertionType.IsLookahead():
		attrs = append(attrs, "peripheries=2")
	case n.Kind == ast.KindChoice:
		attrs = append(attrs, "shape=diamond", "style=filled")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
