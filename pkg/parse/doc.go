// Package parse reads ECMAScript-style regular expressions into [ast.Node]
// trees.
//
// The parser is a hand-written recursive descent over runes. It accepts the
// syntax people paste into regex visualisers: alternation, capturing,
// named and non-capturing groups, lookaheads, anchors and word boundaries,
// shorthand classes, bracket classes with ranges, back-references, the
// usual escapes (\n \t \xHH \uHHHH \cX ...) and greedy or lazy quantifiers.
// It does not evaluate patterns.
//
// # Tree shape
//
// Consecutive literals collapse into one exact node, except that a
// quantifier binds to the last character only, so "abc*" yields "ab"
// followed by a quantified "c". Alternation yields a single choice node.
// Empty alternatives and empty groups contain a single empty node.
// Capture groups are numbered by their opening parenthesis, left to right.
//
// # Errors
//
// Malformed input yields a [*Error] carrying the rune offset of the
// problem, wrapped in a structured error with code INVALID_PATTERN, or
// INVALID_QUANTIFIER for {n,m} bounds out of order:
//
//	nodes, err := parse.Parse("(ab")
//	var perr *parse.Error
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Pos, perr.Msg) // 0 unterminated group
//	}
package parse
