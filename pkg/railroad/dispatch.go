package railroad

import (
	"strconv"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
)

// node lays out a single node at (x, y), decorating it with loop and skip
// paths when it is quantified.
func (e *Engine) node(n ast.Node, x, y float64) (Block, error) {
	if n.Repeat != nil {
		return e.repeat(n, x, y)
	}
	return e.single(n, x, y)
}

func (e *Engine) single(n ast.Node, x, y float64) (Block, error) {
	switch n.Kind {
	case ast.KindStartPoint, ast.KindEndPoint:
		return e.point(x, y), nil
	case ast.KindEmpty:
		return e.elided(x, y), nil
	case ast.KindExact:
		return e.textBox(n.Chars, x, y), nil
	case ast.KindBackref:
		return e.textBox("Backref #"+strconv.Itoa(n.Num), x, y), nil
	case ast.KindDot:
		return e.textBox("Any Character", x, y), nil
	case ast.KindChoice:
		return e.choice(n, x, y)
	case ast.KindCharset:
		return e.charset(n, x, y), nil
	case ast.KindGroup:
		return e.group(n, x, y)
	case ast.KindAssert:
		return e.assert(n, x, y)
	default:
		return Block{}, errors.New(errors.ErrCodeUnsupported, "unknown node type %q", n.Kind)
	}
}
