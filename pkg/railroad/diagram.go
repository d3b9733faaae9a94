package railroad

import "github.com/matzehuels/regexrail/pkg/ast"

// Engine lays out syntax trees with a fixed set of options and text metrics.
// An Engine is immutable after [New] and safe for concurrent use.
type Engine struct {
	opts Options
	char Size
}

// New returns an engine for opts, measuring text once through m. A nil m
// falls back to [DefaultMeasurer] for the configured font size.
func New(opts Options, m Measurer) *Engine {
	if m == nil {
		m = DefaultMeasurer(opts.FontSize)
	}
	return &Engine{opts: opts, char: CharSize(m)}
}

// DefaultMeasurer approximates a monospace face of the given size.
func DefaultMeasurer(fontSize float64) FixedMeasurer {
	return FixedMeasurer{CharWidth: fontSize * 0.6, LineHeight: fontSize * 1.2}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// CharSize returns the average character cell the engine lays text out on.
func (e *Engine) CharSize() Size { return e.char }

// Diagram is a fully positioned railroad diagram.
type Diagram struct {
	Items  []Primitive
	Width  float64
	Height float64
}

// Count returns how many primitives of each type the diagram holds.
func (d *Diagram) Count() map[PrimitiveType]int {
	counts := make(map[PrimitiveType]int)
	for _, it := range d.Items {
		counts[it.Type()]++
	}
	return counts
}

// Layout positions nodes between a start and an end marker and moves the
// result onto a canvas with a content margin on every side and room for
// one line of caption text above the tallest element.
//
// The caller's slice is not modified.
func (e *Engine) Layout(nodes []ast.Node) (*Diagram, error) {
	if err := ast.Validate(nodes); err != nil {
		return nil, err
	}

	seq := make([]ast.Node, 0, len(nodes)+2)
	seq = append(seq, ast.Node{Kind: ast.KindStartPoint})
	seq = append(seq, nodes...)
	seq = append(seq, ast.Node{Kind: ast.KindEndPoint})

	b, err := e.sequence(seq, 0, 0)
	if err != nil {
		return nil, err
	}

	cm := e.opts.ContentMargin
	translate(b.Items, cm, 2*cm+e.char.Height-b.Y)
	return &Diagram{
		Items:  b.Items,
		Width:  b.Width + 2*cm,
		Height: b.Height + 3*cm + e.char.Height,
	}, nil
}
