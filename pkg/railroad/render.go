package railroad

import "github.com/matzehuels/regexrail/pkg/ast"

// Surface receives a finished diagram.
type Surface interface {
	Clear()
	SetSize(width, height float64)
	Add(items ...Primitive)
}

// Parser turns pattern source into a syntax tree.
type Parser interface {
	Parse(source string) ([]ast.Node, error)
}

// ParserFunc adapts a function to [Parser].
type ParserFunc func(source string) ([]ast.Node, error)

// Parse calls f.
func (f ParserFunc) Parse(source string) ([]ast.Node, error) { return f(source) }

// Draw clears s and, unless source is empty, parses it with p, lays it out
// and hands the sized diagram to s. On error s may hold a partial state.
func (e *Engine) Draw(s Surface, source string, p Parser) error {
	s.Clear()
	if source == "" {
		return nil
	}
	nodes, err := p.Parse(source)
	if err != nil {
		return err
	}
	d, err := e.Layout(nodes)
	if err != nil {
		return err
	}
	s.SetSize(d.Width, d.Height)
	s.Add(d.Items...)
	return nil
}
