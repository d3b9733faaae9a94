package railroad

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PrimitiveType discriminates the drawing primitives.
type PrimitiveType string

const (
	TypeCircle     PrimitiveType = "circle"
	TypeRect       PrimitiveType = "rect"
	TypeDashedRect PrimitiveType = "dashedRect"
	TypeText       PrimitiveType = "text"
	TypePath       PrimitiveType = "path"
)

// Primitive is a drawable element positioned in canvas coordinates.
// Translate moves it in place.
type Primitive interface {
	Type() PrimitiveType
	Translate(dx, dy float64)
}

// Stroke is the outline style shared by shapes and paths.
type Stroke struct {
	Color string  `json:"stroke"`
	Width float64 `json:"strokeWidth"`
}

// Circle marks the start and end of a diagram.
type Circle struct {
	CX, CY, R float64
	Stroke
}

func (c *Circle) Type() PrimitiveType { return TypeCircle }

func (c *Circle) Translate(dx, dy float64) {
	c.CX += dx
	c.CY += dy
}

// Rect is a rounded rectangle. Dashed rectangles outline capture groups.
type Rect struct {
	X, Y, Width, Height float64
	Radius              float64
	Dashed              bool
	Stroke
}

func (r *Rect) Type() PrimitiveType {
	if r.Dashed {
		return TypeDashedRect
	}
	return TypeRect
}

func (r *Rect) Translate(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// Text is a label centred on (X, Y). Content may span several lines.
type Text struct {
	X, Y       float64
	Content    string
	FontFamily string
	FontSize   float64
	Color      string
}

func (t *Text) Type() PrimitiveType { return TypeText }

func (t *Text) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// Lines splits the content on newlines.
func (t *Text) Lines() []string { return strings.Split(t.Content, "\n") }

// Command is one path instruction. Op is one of 'M', 'H', 'V', 'Q', 'C';
// Args holds absolute coordinates in SVG order.
type Command struct {
	Op   byte
	Args []float64
}

// Path is an open stroked path.
type Path struct {
	Commands []Command
	Stroke
}

func (p *Path) Type() PrimitiveType { return TypePath }

// Translate shifts every x argument by dx and every y argument by dy.
// H carries a lone x, V a lone y; M, Q and C carry x,y pairs.
func (p *Path) Translate(dx, dy float64) {
	for i := range p.Commands {
		c := &p.Commands[i]
		switch c.Op {
		case 'H':
			c.Args[0] += dx
		case 'V':
			c.Args[0] += dy
		default:
			for j := 0; j+1 < len(c.Args); j += 2 {
				c.Args[j] += dx
				c.Args[j+1] += dy
			}
		}
	}
}

// D returns the path in SVG path-data syntax.
func (p *Path) D() string {
	var b strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Op)
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(FormatFloat(a))
		}
	}
	return b.String()
}

// FormatFloat prints v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newPath(stroke Stroke, cmds ...Command) *Path {
	return &Path{Commands: cmds, Stroke: stroke}
}

func moveTo(x, y float64) Command         { return Command{Op: 'M', Args: []float64{x, y}} }
func horizontalTo(x float64) Command      { return Command{Op: 'H', Args: []float64{x}} }
func verticalTo(y float64) Command        { return Command{Op: 'V', Args: []float64{y}} }
func quadTo(x1, y1, x, y float64) Command { return Command{Op: 'Q', Args: []float64{x1, y1, x, y}} }
func cubicTo(x1, y1, x2, y2, x, y float64) Command {
	return Command{Op: 'C', Args: []float64{x1, y1, x2, y2, x, y}}
}

// translate moves every primitive in items.
func translate(items []Primitive, dx, dy float64) {
	for _, it := range items {
		it.Translate(dx, dy)
	}
}

// Translate moves every primitive in items by (dx, dy).
func Translate(items []Primitive, dx, dy float64) { translate(items, dx, dy) }

// ============================================================================
// JSON
// ============================================================================

func (c *Circle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type PrimitiveType `json:"type"`
		CX   float64       `json:"cx"`
		CY   float64       `json:"cy"`
		R    float64       `json:"r"`
		Stroke
	}{c.Type(), c.CX, c.CY, c.R, c.Stroke})
}

func (r *Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   PrimitiveType `json:"type"`
		X      float64       `json:"x"`
		Y      float64       `json:"y"`
		Width  float64       `json:"width"`
		Height float64       `json:"height"`
		Radius float64       `json:"r"`
		Stroke
	}{r.Type(), r.X, r.Y, r.Width, r.Height, r.Radius, r.Stroke})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       PrimitiveType `json:"type"`
		X          float64       `json:"x"`
		Y          float64       `json:"y"`
		Text       string        `json:"text"`
		FontFamily string        `json:"fontFamily"`
		FontSize   float64       `json:"fontSize"`
		Fill       string        `json:"fill"`
	}{t.Type(), t.X, t.Y, t.Content, t.FontFamily, t.FontSize, t.Color})
}

type commandJSON struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args"`
}

func (p *Path) MarshalJSON() ([]byte, error) {
	cmds := make([]commandJSON, len(p.Commands))
	for i, c := range p.Commands {
		cmds[i] = commandJSON{Op: string(c.Op), Args: c.Args}
	}
	return json.Marshal(struct {
		Type     PrimitiveType `json:"type"`
		D        string        `json:"d"`
		Commands []commandJSON `json:"commands"`
		Stroke
	}{p.Type(), p.D(), cmds, p.Stroke})
}
