package parse

import (
	"strconv"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
)

// Parser satisfies railroad.Parser.
type Parser struct{}

// Parse implements railroad.Parser.
func (Parser) Parse(source string) ([]ast.Node, error) { return Parse(source) }

// Parse reads pattern into a syntax tree.
func Parse(pattern string) ([]ast.Node, error) {
	p := &parser{src: []rune(pattern)}
	nodes, perr := p.parse()
	if perr != nil {
		return nil, errors.Wrap(perr.Code, perr, "invalid pattern")
	}
	return nodes, nil
}

type backref struct {
	num int
	pos int
}

type parser struct {
	src    []rune
	pos    int
	groups int
	refs   []backref
}

func (p *parser) more() bool     { return p.pos < len(p.src) }
func (p *parser) peek() rune     { return p.src[p.pos] }
func (p *parser) at(r rune) bool { return p.more() && p.src[p.pos] == r }

// lookingAt reports whether the input continues with s.
func (p *parser) lookingAt(s string) bool {
	i := p.pos
	for _, r := range s {
		if i >= len(p.src) || p.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (p *parser) parse() ([]ast.Node, *Error) {
	nodes, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.more() {
		return nil, p.errorf("unmatched ')'")
	}
	for _, ref := range p.refs {
		if ref.num > p.groups {
			return nil, p.errorAt(ref.pos, "reference to non-existent group %d", ref.num)
		}
	}
	return nodes, nil
}

// alternation reads '|'-separated sequences up to a ')' or the end.
func (p *parser) alternation() ([]ast.Node, *Error) {
	var branches [][]ast.Node
	for {
		seq, err := p.sequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, seq)
		if !p.at('|') {
			break
		}
		p.pos++
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return []ast.Node{{Kind: ast.KindChoice, Branches: branches}}, nil
}

func (p *parser) sequence() ([]ast.Node, *Error) {
	var nodes []ast.Node
	for p.more() && !p.at('|') && !p.at(')') {
		start := p.pos
		n, err := p.atom()
		if err != nil {
			return nil, err
		}
		rep, ok, err := p.quantifier()
		if err != nil {
			return nil, err
		}
		if ok {
			if !quantifiable(n) {
				return nil, p.errorAt(start, "nothing to repeat")
			}
			n.Repeat = rep
			if p.at('?') {
				p.pos++ // lazy
			}
			if _, again, _ := p.scanQuantifier(); again {
				return nil, p.errorf("nothing to repeat")
			}
		}
		nodes = appendNode(nodes, n)
	}
	if len(nodes) == 0 {
		nodes = []ast.Node{{Kind: ast.KindEmpty}}
	}
	return nodes, nil
}

// appendNode merges unquantified literals into the preceding literal.
func appendNode(nodes []ast.Node, n ast.Node) []ast.Node {
	if n.Kind == ast.KindExact && n.Repeat == nil && len(nodes) > 0 {
		last := &nodes[len(nodes)-1]
		if last.Kind == ast.KindExact && last.Repeat == nil {
			last.Chars += n.Chars
			return nodes
		}
	}
	return append(nodes, n)
}

func quantifiable(n ast.Node) bool {
	if n.Kind != ast.KindAssert {
		return true
	}
	return n.AssertionType.IsLookahead()
}

func (p *parser) atom() (ast.Node, *Error) {
	switch c := p.peek(); c {
	case '(':
		return p.group()
	case '[':
		return p.class()
	case '\\':
		return p.escape()
	case '.':
		p.pos++
		return ast.Node{Kind: ast.KindDot}, nil
	case '^':
		p.pos++
		return ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertBegin}, nil
	case '$':
		p.pos++
		return ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertEnd}, nil
	case '*', '+', '?':
		return ast.Node{}, p.errorf("nothing to repeat")
	case '{':
		if _, ok, _ := p.scanQuantifier(); ok {
			return ast.Node{}, p.errorf("nothing to repeat")
		}
		p.pos++
		return literal(c), nil
	default:
		p.pos++
		return literal(c), nil
	}
}

func literal(r rune) ast.Node {
	return ast.Node{Kind: ast.KindExact, Chars: string(r)}
}

func (p *parser) group() (ast.Node, *Error) {
	open := p.pos
	p.pos++ // (

	n := ast.Node{Kind: ast.KindGroup}
	switch {
	case p.lookingAt("?:"):
		p.pos += 2
	case p.lookingAt("?="):
		p.pos += 2
		n = ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertLookahead}
	case p.lookingAt("?!"):
		p.pos += 2
		n = ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertNegativeLookahead}
	case p.lookingAt("?<=") || p.lookingAt("?<!"):
		return ast.Node{}, p.errorAt(open, "lookbehind is not supported")
	case p.lookingAt("?<"):
		p.pos += 2
		if err := p.groupName(); err != nil {
			return ast.Node{}, err
		}
		p.groups++
		n.Num = p.groups
	case p.at('?'):
		return ast.Node{}, p.errorf("invalid group")
	default:
		p.groups++
		n.Num = p.groups
	}

	body, err := p.alternation()
	if err != nil {
		return ast.Node{}, err
	}
	if !p.at(')') {
		return ast.Node{}, p.errorAt(open, "unterminated group")
	}
	p.pos++
	n.Sub = body
	return n, nil
}

func (p *parser) groupName() *Error {
	start := p.pos
	for p.more() && isNameRune(p.peek(), p.pos == start) {
		p.pos++
	}
	if p.pos == start || !p.at('>') {
		return p.errorAt(start, "invalid group name")
	}
	p.pos++
	return nil
}

func isNameRune(r rune, first bool) bool {
	switch {
	case r == '_' || r == '$':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return !first
	}
	return false
}

// quantifier consumes a quantifier at the cursor, if there is one.
func (p *parser) quantifier() (*ast.Repeat, bool, *Error) {
	rep, ok, width := p.scanQuantifier()
	if !ok {
		return nil, false, nil
	}
	start := p.pos
	p.pos += width
	if err := rep.Validate(); err != nil {
		e := p.errorAt(start, "numbers out of order in {} quantifier")
		e.Code = errors.ErrCodeInvalidQuantifier
		return nil, false, e
	}
	return rep, true, nil
}

// scanQuantifier recognises *, +, ? and {n}, {n,}, {n,m}. A '{' that does
// not open a well-formed brace quantifier is not a quantifier.
func (p *parser) scanQuantifier() (*ast.Repeat, bool, int) {
	if !p.more() {
		return nil, false, 0
	}
	switch p.peek() {
	case '*':
		return &ast.Repeat{Min: 0, Max: ast.Unbounded}, true, 1
	case '+':
		return &ast.Repeat{Min: 1, Max: ast.Unbounded}, true, 1
	case '?':
		return &ast.Repeat{Min: 0, Max: 1}, true, 1
	case '{':
	default:
		return nil, false, 0
	}

	i := p.pos + 1
	digits := func() (int, bool) {
		start := i
		for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
			i++
		}
		if i == start {
			return 0, false
		}
		n, err := strconv.Atoi(string(p.src[start:i]))
		if err != nil {
			n = maxBound
		}
		return min(n, maxBound), true
	}

	lo, ok := digits()
	if !ok {
		return nil, false, 0
	}
	hi := lo
	if i < len(p.src) && p.src[i] == ',' {
		i++
		if n, ok := digits(); ok {
			hi = n
		} else {
			hi = ast.Unbounded
		}
	}
	if i >= len(p.src) || p.src[i] != '}' {
		return nil, false, 0
	}
	i++
	return &ast.Repeat{Min: lo, Max: hi}, true, i - p.pos
}

// maxBound caps brace quantifier bounds that overflow int.
const maxBound = 1<<31 - 1
