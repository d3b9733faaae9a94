package railroad

import "github.com/matzehuels/regexrail/pkg/ast"

// Elidable reports whether n can only ever match the empty string and so
// draws as a bare connector. Capturing groups are never elided because
// their number is still meaningful.
func Elidable(n ast.Node) bool {
	switch n.Kind {
	case ast.KindEmpty:
		return true
	case ast.KindGroup:
		return n.Num == 0 && ElidableSequence(n.Sub)
	case ast.KindChoice:
		for _, b := range n.Branches {
			if !ElidableSequence(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ElidableSequence reports whether every node of seq is [Elidable].
// The empty sequence is elidable.
func ElidableSequence(seq []ast.Node) bool {
	for _, n := range seq {
		if !Elidable(n) {
			return false
		}
	}
	return true
}
