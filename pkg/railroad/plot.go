package railroad

import "math"

// ElideLength is the width of the connector that replaces elided subtrees.
const ElideLength = 10

// smoothRadius is the corner radius of branch connectors.
const smoothRadius = 10

// Block is the laid-out form of a node or sequence.
//
// (X, Y) is the top-left corner of the bounding box. LineInX and LineOutX
// are where the main connector enters and leaves, both at the y the block
// was laid out on.
type Block struct {
	Items    []Primitive
	X, Y     float64
	Width    float64
	Height   float64
	LineInX  float64
	LineOutX float64
}

// Bottom returns the lower edge of the bounding box.
func (b Block) Bottom() float64 { return b.Y + b.Height }

func (e *Engine) stroke() Stroke {
	return Stroke{Color: e.opts.BorderColor, Width: e.opts.BorderWidth}
}

func (e *Engine) groupStroke() Stroke {
	return Stroke{Color: e.opts.GroupBorderColor, Width: e.opts.BorderWidth}
}

func (e *Engine) point(x, y float64) Block {
	r := e.opts.PointR
	return Block{
		Items:    []Primitive{&Circle{CX: x + r, CY: y, R: r, Stroke: e.stroke()}},
		X:        x,
		Y:        y,
		Width:    2 * r,
		Height:   2 * r,
		LineInX:  x,
		LineOutX: x + 2*r,
	}
}

func (e *Engine) elided(x, y float64) Block {
	return Block{
		Items:    []Primitive{e.line(x, y, x+ElideLength)},
		X:        x,
		Y:        y,
		Width:    ElideLength,
		LineInX:  x,
		LineOutX: x + ElideLength,
	}
}

func (e *Engine) line(x, y, destX float64) *Path {
	return newPath(e.stroke(), moveTo(x, y), horizontalTo(destX))
}

// smoothLine connects (fromX, fromY) to (toX, toY). Nearly level endpoints
// get a single cubic; otherwise the path turns vertical through two
// quarter-curves and finishes horizontally.
func (e *Engine) smoothLine(fromX, fromY, toX, toY float64) *Path {
	const r = smoothRadius
	signX, signY := 1.0, 1.0
	if fromX > toX {
		signX = -1
	}
	if fromY > toY {
		signY = -1
	}

	if math.Abs(fromY-toY) < r*1.5 {
		return newPath(e.stroke(),
			moveTo(fromX, fromY),
			cubicTo(fromX+math.Min(math.Abs(toX-fromX)/2, r)*signX, fromY, toX-(toX-fromX)/2, toY, toX, toY),
		)
	}

	turnX := fromX + r*signX
	vy := toY - r*signY
	if math.Abs(fromY-toY) < r*2 {
		vy = fromY + r*signY
	}
	return newPath(e.stroke(),
		moveTo(fromX, fromY),
		quadTo(turnX, fromY, turnX, fromY+r*signY),
		verticalTo(vy),
		quadTo(turnX, toY, fromX+r*signX*2, toY),
		horizontalTo(toX),
	)
}

func (e *Engine) rect(x, y, w, h float64) *Rect {
	return &Rect{X: x, Y: y, Width: w, Height: h, Radius: e.opts.BorderRadius, Stroke: e.stroke()}
}

func (e *Engine) groupRect(x, y, w, h float64) *Rect {
	return &Rect{
		X: x, Y: y, Width: w, Height: h,
		Radius: e.opts.BorderRadius,
		Dashed: true,
		Stroke: Stroke{Color: e.opts.GroupBorderColor, Width: e.opts.GroupBorderWidth},
	}
}

// centerShift widens a block of the given width to fit a label of
// labelWidth, moving items right so both stay centred. It returns the new
// width and the applied offset.
func centerShift(items []Primitive, width, labelWidth float64) (float64, float64) {
	if labelWidth <= width {
		return width, 0
	}
	off := (labelWidth - width) / 2
	translate(items, off, 0)
	return labelWidth, off
}
