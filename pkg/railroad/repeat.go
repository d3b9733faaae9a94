package railroad

import (
	"strconv"

	"github.com/matzehuels/regexrail/pkg/ast"
)

// RepeatLabel returns the caption drawn under a quantified node, or "" when
// the node needs none ({1,1} and optional nodes).
func RepeatLabel(r ast.Repeat) string {
	switch {
	case r.Min == r.Max && r.Min == 1:
		return ""
	case r.Bounded() && r.Max == 1:
		return ""
	case r.Min == r.Max:
		return plural(r.Min)
	case !r.Bounded():
		return strconv.Itoa(r.Min) + " or more times"
	case r.Max-r.Min > 1:
		return strconv.Itoa(r.Min) + " to " + plural(r.Max)
	default:
		return strconv.Itoa(r.Min) + " or " + plural(r.Max)
	}
}

func plural(n int) string {
	if n < 2 {
		return strconv.Itoa(n) + " time"
	}
	return strconv.Itoa(n) + " times"
}

// repeat decorates a quantified node with a loop path underneath when it
// may repeat, a skip path above when it may be skipped, and a caption
// under the loop.
func (e *Engine) repeat(n ast.Node, x, y float64) (Block, error) {
	if Elidable(n) {
		return e.elided(x, y), nil
	}
	rep := *n.Repeat
	if rep.Min == 0 && rep.Max == 0 {
		return e.elided(x, y), nil
	}

	ret, err := e.single(n.Unquantified(), x, y)
	if err != nil {
		return Block{}, err
	}
	if rep.Min == 1 && rep.Max == 1 {
		return ret, nil
	}

	pad := e.opts.Padding
	r := pad
	offX, offY := pad, 0.0
	rectH := ret.Bottom() - y
	rectW := 2*pad + ret.Width
	width, height := rectW, ret.Height

	var items []Primitive
	var loop *Path
	if rep.Max != 1 {
		rectH += pad
		height += pad
		loop = newPath(e.groupStroke(),
			moveTo(ret.X+pad, y),
			quadTo(x, y, x, y+r),
			verticalTo(y+rectH-r),
			quadTo(x, y+rectH, x+r, y+rectH),
			horizontalTo(x+rectW-r),
			quadTo(x+rectW, y+rectH, x+rectW, y+rectH-r),
			verticalTo(y+r),
			quadTo(x+rectW, y, ret.X+ret.Width+pad, y),
		)
		items = append(items, loop)
	}

	if rep.Min == 0 {
		skipH := y - ret.Y + pad
		skipW := rectW + 2*pad
		offX += pad
		offY = -pad - 2
		width = skipW
		height += pad + 2
		skip := newPath(e.stroke(),
			moveTo(x, y),
			quadTo(x+r, y, x+r, y-r),
			verticalTo(y-skipH+r),
			quadTo(x+r, y-skipH, x+2*r, y-skipH),
			horizontalTo(x+skipW-2*r),
			quadTo(x+skipW-r, y-skipH, x+skipW-r, y-skipH+r),
			verticalTo(y-r),
			quadTo(x+skipW-r, y, x+skipW, y),
		)
		if loop != nil {
			loop.Translate(pad, 0)
		}
		items = append(items, skip)
	}

	if txt := RepeatLabel(rep); txt != "" {
		tl := e.label(txt, x+width/2, y)
		tl.text.Translate(0, rectH+tl.h+e.opts.LabelMargin)
		items = append(items, tl.text)
		height += e.opts.LabelMargin + tl.h
		var labelOff float64
		width, labelOff = centerShift(items, width, tl.w)
		offX += labelOff
	}

	translate(ret.Items, offX, 0)
	items = append(items, ret.Items...)

	return Block{
		Items:    items,
		X:        x,
		Y:        ret.Y + offY,
		Width:    width,
		Height:   height,
		LineInX:  ret.LineInX + offX,
		LineOutX: ret.LineOutX + offX,
	}, nil
}
