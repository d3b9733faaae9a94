package railroad

import (
	"math"

	"github.com/matzehuels/regexrail/pkg/ast"
)

const (
	choiceMarginX  = 20
	choiceSpacing  = 6
	choicePaddingY = 4
)

// choice stacks the alternatives vertically, each centred, and fans the
// main line out to every branch and back with smooth connectors.
func (e *Engine) choice(n ast.Node, x, y float64) (Block, error) {
	if Elidable(n) {
		return e.elided(x, y), nil
	}

	branches := make([]Block, 0, len(n.Branches))
	width, height := 0.0, 0.0
	for _, seq := range n.Branches {
		b, err := e.sequence(seq, x, y)
		if err != nil {
			return Block{}, err
		}
		branches = append(branches, b)
		height += b.Height
		width = math.Max(width, b.Width)
	}
	height += float64(len(branches)-1)*choiceSpacing + 2*choicePaddingY
	width += 2 * choiceMarginX

	centerX := x + width/2
	dy := y - height/2 + choicePaddingY
	lineOutX := x + width
	railIn := x + choiceMarginX
	railOut := x + width - choiceMarginX

	var items []Primitive
	for _, b := range branches {
		dx := centerX - b.Width/2 - b.X
		shiftY := dy - b.Y
		translate(b.Items, dx, shiftY)
		items = append(items, b.Items...)

		lineY := y + shiftY
		items = append(items,
			e.smoothLine(x, y, railIn, lineY),
			e.smoothLine(lineOutX, y, railOut, lineY),
		)
		if in := b.LineInX + dx; in != railIn {
			items = append(items, e.line(railIn, lineY, in))
		}
		if out := b.LineOutX + dx; out != railOut {
			items = append(items, e.line(out, lineY, railOut))
		}
		dy += b.Height + choiceSpacing
	}

	return Block{
		Items:    items,
		X:        x,
		Y:        y - height/2,
		Width:    width,
		Height:   height,
		LineInX:  x,
		LineOutX: lineOutX,
	}, nil
}
