package railroad

import (
	"math"

	"github.com/matzehuels/regexrail/pkg/ast"
)

// sequence lays nodes out left to right starting at (x, y), joining each
// pair of neighbours with a straight connector of PathLen. An empty
// sequence draws as an elided connector.
func (e *Engine) sequence(nodes []ast.Node, x, y float64) (Block, error) {
	if len(nodes) == 0 {
		return e.elided(x, y), nil
	}

	gap := e.opts.PathLen
	placed := make([]Block, 0, len(nodes))
	var items []Primitive

	cursor := x
	width := 0.0
	top, bottom := y, y
	for _, n := range nodes {
		b, err := e.node(n, cursor, y)
		if err != nil {
			return Block{}, err
		}
		placed = append(placed, b)
		items = append(items, b.Items...)
		cursor += b.Width + gap
		width += b.Width
		top = math.Min(top, b.Y)
		bottom = math.Max(bottom, b.Bottom())
	}

	for i := 1; i < len(placed); i++ {
		width += gap
		items = append(items, e.line(placed[i-1].LineOutX, y, placed[i].LineInX))
	}

	return Block{
		Items:    items,
		X:        x,
		Y:        top,
		Width:    width,
		Height:   bottom - top,
		LineInX:  placed[0].LineInX,
		LineOutX: placed[len(placed)-1].LineOutX,
	}, nil
}
