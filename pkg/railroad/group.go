package railroad

import (
	"strconv"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
)

// groupPadding is the gap between a capture group's body and its outline.
const groupPadding = 18

func (e *Engine) group(n ast.Node, x, y float64) (Block, error) {
	if Elidable(n) {
		return e.elided(x, y), nil
	}
	sub, err := e.sequence(n.Sub, x, y)
	if err != nil {
		return Block{}, err
	}
	if n.Num == 0 {
		return sub, nil
	}

	const pad = groupPadding
	translate(sub.Items, pad, 0)
	rectW := sub.Width + 2*pad
	rectH := sub.Height + 2*pad
	rect := e.groupRect(x, sub.Y-pad, rectW, rectH)
	tl := e.label("Group #"+strconv.Itoa(n.Num), rect.X+rectW/2, rect.Y-e.opts.BorderWidth)

	items := append(sub.Items, rect, tl.text)
	width, off := centerShift(items, rectW, tl.w)
	return Block{
		Items:    items,
		X:        x,
		Y:        tl.y,
		Width:    width,
		Height:   rectH + tl.h + e.opts.BorderWidth,
		LineInX:  off + sub.LineInX + pad,
		LineOutX: off + sub.LineOutX + pad,
	}, nil
}

var assertCaptions = map[ast.AssertionType]string{
	ast.AssertBegin:             "Begin With",
	ast.AssertEnd:               "End With",
	ast.AssertWordBoundary:      "WordBoundary",
	ast.AssertNonWordBoundary:   "NonWordBoundary",
	ast.AssertLookahead:         "Followed by:",
	ast.AssertNegativeLookahead: "Not followed by:",
}

// assert draws anchors and boundaries as captioned boxes, and lookaheads as
// their body inside a solid outline captioned above.
func (e *Engine) assert(n ast.Node, x, y float64) (Block, error) {
	caption, ok := assertCaptions[n.AssertionType]
	if !ok {
		return Block{}, errors.New(errors.ErrCodeUnsupported, "unknown assertion %q", n.AssertionType)
	}
	if !n.AssertionType.IsLookahead() {
		return e.textBox(caption, x, y), nil
	}

	sub, err := e.sequence(n.Sub, x, y)
	if err != nil {
		return Block{}, err
	}
	pad := e.opts.Padding
	translate(sub.Items, pad, 0)
	rectW := sub.Width + 2*pad
	rectH := sub.Height + 2*pad
	rect := e.rect(x, sub.Y-pad, rectW, rectH)
	tl := e.label(caption, rect.X+rectW/2, rect.Y)

	items := append(sub.Items, rect, tl.text)
	width, off := centerShift(items, rectW, tl.w)
	return Block{
		Items:    items,
		X:        x,
		Y:        tl.y,
		Width:    width,
		Height:   rectH + tl.h,
		LineInX:  off + sub.LineInX + pad,
		LineOutX: off + sub.LineOutX + pad,
	}, nil
}
