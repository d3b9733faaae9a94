package ast

import (
	"fmt"

	"github.com/matzehuels/regexrail/pkg/errors"
)

// Kind discriminates the node variants.
type Kind string

const (
	KindExact      Kind = "exact"
	KindCharset    Kind = "charset"
	KindChoice     Kind = "choice"
	KindGroup      Kind = "group"
	KindAssert     Kind = "assert"
	KindDot        Kind = "dot"
	KindBackref    Kind = "backref"
	KindEmpty      Kind = "empty"
	KindStartPoint Kind = "startPoint"
	KindEndPoint   Kind = "endPoint"
)

// Kinds lists every known kind in declaration order.
var Kinds = []Kind{
	KindExact, KindCharset, KindChoice, KindGroup, KindAssert,
	KindDot, KindBackref, KindEmpty, KindStartPoint, KindEndPoint,
}

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// AssertionType names the zero-width assertion carried by a [KindAssert] node.
type AssertionType string

const (
	AssertBegin             AssertionType = "AssertBegin"
	AssertEnd               AssertionType = "AssertEnd"
	AssertWordBoundary      AssertionType = "AssertWordBoundary"
	AssertNonWordBoundary   AssertionType = "AssertNonWordBoundary"
	AssertLookahead         AssertionType = "AssertLookahead"
	AssertNegativeLookahead AssertionType = "AssertNegativeLookahead"
)

// IsLookahead reports whether the assertion wraps a sub-expression.
func (a AssertionType) IsLookahead() bool {
	return a == AssertLookahead || a == AssertNegativeLookahead
}

// Node is one element of a regular-expression syntax tree.
type Node struct {
	Kind   Kind    `json:"type"`
	Repeat *Repeat `json:"repeat,omitempty"`

	// Chars holds literal text for exact nodes and the individual
	// characters of a charset.
	Chars   string   `json:"chars,omitempty"`
	Ranges  []string `json:"ranges,omitempty"`
	Classes []string `json:"classes,omitempty"`
	Exclude bool     `json:"exclude,omitempty"`

	Branches [][]Node `json:"branches,omitempty"`
	Sub      []Node   `json:"sub,omitempty"`

	// Num is the capture index of a group (0 when non-capturing) or the
	// group referenced by a backref.
	Num int `json:"num,omitempty"`

	AssertionType AssertionType `json:"assertionType,omitempty"`
}

// Unquantified returns a copy of n without its quantifier.
func (n Node) Unquantified() Node {
	n.Repeat = nil
	return n
}

// Capturing reports whether n is a numbered group.
func (n Node) Capturing() bool {
	return n.Kind == KindGroup && n.Num > 0
}

// String returns a short description used in logs and debug views.
func (n Node) String() string {
	var s string
	switch n.Kind {
	case KindExact:
		s = fmt.Sprintf("exact %q", n.Chars)
	case KindBackref:
		s = fmt.Sprintf("backref #%d", n.Num)
	case KindGroup:
		if n.Num > 0 {
			s = fmt.Sprintf("group #%d", n.Num)
		} else {
			s = "group"
		}
	case KindAssert:
		s = "assert " + string(n.AssertionType)
	case KindCharset:
		s = "charset"
		if n.Exclude {
			s += " ^"
		}
	case KindChoice:
		s = fmt.Sprintf("choice (%d)", len(n.Branches))
	default:
		s = string(n.Kind)
	}
	if n.Repeat != nil {
		s += " " + n.Repeat.String()
	}
	return s
}

// Walk visits every node of the tree in depth-first pre-order.
// Returning false from fn skips the node's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		for _, b := range n.Branches {
			Walk(b, fn)
		}
		Walk(n.Sub, fn)
	}
}

// Count returns the number of nodes of each kind in the tree.
func Count(nodes []Node) map[Kind]int {
	counts := make(map[Kind]int)
	Walk(nodes, func(n Node) bool {
		counts[n.Kind]++
		return true
	})
	return counts
}

// Validate checks that every node has a known kind, a well-formed
// quantifier and the payload its kind requires.
func Validate(nodes []Node) error {
	var err error
	Walk(nodes, func(n Node) bool {
		if err != nil {
			return false
		}
		err = validateNode(n)
		return err == nil
	})
	return err
}

func validateNode(n Node) error {
	if !n.Kind.Known() {
		return errors.New(errors.ErrCodeUnsupported, "unknown node type %q", n.Kind)
	}
	if n.Repeat != nil {
		if err := n.Repeat.Validate(); err != nil {
			return err
		}
	}
	switch n.Kind {
	case KindChoice:
		if len(n.Branches) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "choice without branches")
		}
	case KindBackref:
		if n.Num < 1 {
			return errors.New(errors.ErrCodeInvalidInput, "backref to group %d", n.Num)
		}
	case KindGroup:
		if n.Num < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative group number %d", n.Num)
		}
	case KindAssert:
		switch n.AssertionType {
		case AssertBegin, AssertEnd, AssertWordBoundary, AssertNonWordBoundary,
			AssertLookahead, AssertNegativeLookahead:
		default:
			return errors.New(errors.ErrCodeUnsupported, "unknown assertion %q", n.AssertionType)
		}
	}
	return nil
}
