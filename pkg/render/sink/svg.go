package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/regexrail/pkg/railroad"
)

// lineHeightEm spaces the lines of a multi-line label.
const lineHeightEm = 1.2

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	title      string
}

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle adds a <title> element, usually the pattern source.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG writes d as a standalone SVG document.
func RenderSVG(d *railroad.Diagram, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := ff(d.Width), ff(d.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n", w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", w, h, escape(r.background))
	}
	for _, it := range d.Items {
		writePrimitive(&buf, it)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePrimitive(buf *bytes.Buffer, p railroad.Primitive) {
	switch v := p.(type) {
	case *railroad.Circle:
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="none" %s/>`+"\n",
			ff(v.CX), ff(v.CY), ff(v.R), strokeAttrs(v.Stroke))
	case *railroad.Rect:
		dash := ""
		if v.Dashed {
			dash = ` stroke-dasharray="3 1"`
		}
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="none" %s%s/>`+"\n",
			ff(v.X), ff(v.Y), ff(v.Width), ff(v.Height), ff(v.Radius), ff(v.Radius), strokeAttrs(v.Stroke), dash)
	case *railroad.Path:
		fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke-linecap="butt" stroke-linejoin="round" %s/>`+"\n",
			v.D(), strokeAttrs(v.Stroke))
	case *railroad.Text:
		writeText(buf, v)
	}
}

func writeText(buf *bytes.Buffer, t *railroad.Text) {
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">`,
		ff(t.X), ff(t.Y), escape(t.FontFamily), ff(t.FontSize), escape(t.Color))
	lines := t.Lines()
	if len(lines) == 1 {
		buf.WriteString(escape(lines[0]))
	} else {
		first := -float64(len(lines)-1) * lineHeightEm / 2
		for i, line := range lines {
			dy := lineHeightEm
			if i == 0 {
				dy = first
			}
			fmt.Fprintf(buf, `<tspan x="%s" dy="%sem">%s</tspan>`, ff(t.X), ff(dy), escape(line))
		}
	}
	buf.WriteString("</text>\n")
}

func strokeAttrs(s railroad.Stroke) string {
	return fmt.Sprintf(`stroke="%s" stroke-width="%s"`, escape(s.Color), ff(s.Width))
}

func ff(v float64) string { return railroad.FormatFloat(v) }

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// SVGCanvas collects a diagram handed over by [railroad.Engine.Draw].
// It implements [railroad.Surface].
type SVGCanvas struct {
	width, height float64
	items         []railroad.Primitive
}

// NewSVGCanvas returns an empty canvas.
func NewSVGCanvas() *SVGCanvas { return &SVGCanvas{} }

func (c *SVGCanvas) Clear() {
	c.width, c.height = 0, 0
	c.items = nil
}

func (c *SVGCanvas) SetSize(width, height float64) {
	c.width, c.height = width, height
}

func (c *SVGCanvas) Add(items ...railroad.Primitive) {
	c.items = append(c.items, items...)
}

// Diagram returns what the canvas currently holds.
func (c *SVGCanvas) Diagram() *railroad.Diagram {
	return &railroad.Diagram{Items: c.items, Width: c.width, Height: c.height}
}

// Bytes renders the canvas contents.
func (c *SVGCanvas) Bytes(opts ...SVGOption) []byte {
	return RenderSVG(c.Diagram(), opts...)
}
