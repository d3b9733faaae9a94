package parse

import (
	"strconv"
	"strings"

	"github.com/matzehuels/regexrail/pkg/ast"
)

func isClassLetter(r rune) bool {
	return strings.ContainsRune("dDwWsS", r)
}

// escape reads a backslash sequence outside brackets.
func (p *parser) escape() (ast.Node, *Error) {
	start := p.pos
	p.pos++ // backslash
	if !p.more() {
		return ast.Node{}, p.errorAt(start, `\ at end of pattern`)
	}
	c := p.peek()
	switch {
	case isClassLetter(c):
		p.pos++
		return ast.Node{Kind: ast.KindCharset, Classes: []string{string(c)}}, nil
	case c == 'b':
		p.pos++
		return ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertWordBoundary}, nil
	case c == 'B':
		p.pos++
		return ast.Node{Kind: ast.KindAssert, AssertionType: ast.AssertNonWordBoundary}, nil
	case c >= '1' && c <= '9':
		i := p.pos
		for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
			i++
		}
		num, err := strconv.Atoi(string(p.src[p.pos:i]))
		if err != nil {
			return ast.Node{}, p.errorAt(start, "invalid back-reference")
		}
		p.pos = i
		p.refs = append(p.refs, backref{num: num, pos: start})
		return ast.Node{Kind: ast.KindBackref, Num: num}, nil
	}
	return literal(p.charEscape()), nil
}

// charEscape reads the character after a backslash. Incomplete \x, \u and
// \c sequences stand for the letter itself.
func (p *parser) charEscape() rune {
	c := p.peek()
	p.pos++
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case '0':
		return 0
	case 'x':
		if r, ok := p.hex(2); ok {
			return r
		}
	case 'u':
		if r, ok := p.hex(4); ok {
			return r
		}
	case 'c':
		if p.more() {
			if l := p.peek(); (l >= 'a' && l <= 'z') || (l >= 'A' && l <= 'Z') {
				p.pos++
				return l % 32
			}
		}
		p.pos-- // the backslash is literal, 'c' is read next
		return '\\'
	}
	return c
}

func (p *parser) hex(n int) (rune, bool) {
	if p.pos+n > len(p.src) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+n]), 16, 32)
	if err != nil {
		return 0, false
	}
	p.pos += n
	return rune(v), true
}

// classItem is one element between brackets: a character or a shorthand.
type classItem struct {
	char  rune
	class string
}

func (p *parser) classItem() classItem {
	if p.peek() != '\\' || p.pos+1 >= len(p.src) {
		return classItem{char: p.next()}
	}
	p.pos++ // backslash
	c := p.peek()
	switch {
	case isClassLetter(c):
		p.pos++
		return classItem{class: string(c)}
	case c == 'b':
		p.pos++
		return classItem{char: '\b'}
	}
	return classItem{char: p.charEscape()}
}

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	return r
}

// class reads a bracket expression.
func (p *parser) class() (ast.Node, *Error) {
	open := p.pos
	p.pos++ // [
	n := ast.Node{Kind: ast.KindCharset}
	if p.at('^') {
		p.pos++
		n.Exclude = true
	}

	var chars strings.Builder
	for {
		if !p.more() {
			return ast.Node{}, p.errorAt(open, "unterminated character class")
		}
		if p.at(']') {
			p.pos++
			break
		}

		itemPos := p.pos
		from := p.classItem()
		if from.class != "" {
			n.Classes = append(n.Classes, from.class)
			continue
		}
		// a '-' forms a range unless it is the last thing before ']'
		if !p.at('-') || p.pos+1 >= len(p.src) || p.src[p.pos+1] == ']' {
			chars.WriteRune(from.char)
			continue
		}
		p.pos++ // -
		to := p.classItem()
		if to.class != "" {
			chars.WriteRune(from.char)
			chars.WriteRune('-')
			n.Classes = append(n.Classes, to.class)
			continue
		}
		if to.char < from.char {
			return ast.Node{}, p.errorAt(itemPos, "range out of order in character class")
		}
		n.Ranges = append(n.Ranges, string(from.char)+string(to.char))
	}
	n.Chars = chars.String()
	return n, nil
}
