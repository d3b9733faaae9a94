package railroad

import (
	"sort"
	"strings"

	"github.com/matzehuels/regexrail/pkg/ast"
)

// classNames maps shorthand class letters to their captions.
var classNames = map[string]string{
	"d": "Digit",
	"D": "NonDigit",
	"w": "Word",
	"W": "NonWord",
	"s": "WhiteSpace",
	"S": "NonWhiteSpace",
}

// ClassName returns the caption for a shorthand class letter.
func ClassName(class string) string {
	if name, ok := classNames[class]; ok {
		return name
	}
	return class
}

// pairTolerance is the largest width difference at which two narrow boxes
// still share a row.
const pairTolerance = 2

func (e *Engine) charset(n ast.Node, x, y float64) Block {
	if n.Chars == "" && len(n.Ranges) == 0 && len(n.Classes) == 1 {
		return e.classBox(n, x, y)
	}
	if n.Chars == "" && len(n.Ranges) == 0 && len(n.Classes) == 0 {
		return e.textBox("AnyChar", x, y)
	}

	pad := e.opts.Padding
	margin := e.opts.LabelMargin

	var boxes []Block
	if n.Chars != "" {
		boxes = append(boxes, e.textBox(n.Chars, x, y))
	}
	for _, rg := range n.Ranges {
		boxes = append(boxes, e.textBox(rangeText(rg), x, y))
	}
	for _, cls := range n.Classes {
		boxes = append(boxes, e.textBox(ClassName(cls), x, y))
	}

	boxH := boxes[0].Height
	rows, maxW := packBoxes(boxes, margin)

	width := maxW + 2*pad
	height := float64(len(rows)-1)*margin + float64(len(rows))*boxH + 2*pad

	rect := e.rect(x, y-height/2, width, height)
	items := []Primitive{rect}
	rowY := rect.Y + pad
	for _, row := range rows {
		translate(row.Items, x-row.X+(width-row.Width)/2, rowY-row.Y)
		items = append(items, row.Items...)
		rowY += row.Height + margin
	}

	header := "One of:"
	if n.Exclude {
		header = "None of:"
	}
	tl := e.label(header, rect.X+rect.Width/2, rect.Y)
	items = append(items, tl.text)

	rectW := width
	width, off := centerShift(items, width, tl.w)
	return Block{
		Items:    items,
		X:        x,
		Y:        tl.y,
		Width:    width,
		Height:   height + tl.h,
		LineInX:  off + x,
		LineOutX: off + x + rectW,
	}
}

// classBox draws a lone shorthand class as a plain box, captioned
// "None of:" when negated.
func (e *Engine) classBox(n ast.Node, x, y float64) Block {
	res := e.textBox(ClassName(n.Classes[0]), x, y)
	if !n.Exclude {
		return res
	}
	tl := e.label("None of:", res.X+res.Width/2, res.Y)
	items := append(res.Items, tl.text)
	width, off := centerShift(items, res.Width, tl.w)
	return Block{
		Items:    items,
		X:        x,
		Y:        tl.y,
		Width:    width,
		Height:   res.Height + tl.h,
		LineInX:  off + res.X,
		LineOutX: off + res.X + res.Width,
	}
}

// rangeText renders a two-character range entry as "a-z".
func rangeText(rg string) string {
	runes := []rune(rg)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, "-")
}

// packBoxes arranges boxes into rows. Boxes wider than half the widest
// (plus margin) get a row each; the rest are paired by [PairRows]. Paired
// boxes sit side by side, margin apart. It returns the rows and the width
// of the widest box.
func packBoxes(boxes []Block, margin float64) ([]Block, float64) {
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Width > boxes[j].Width })
	maxW := boxes[0].Width

	var rows, narrow []Block
	for _, b := range boxes {
		if b.Width*2+margin > maxW {
			rows = append(rows, b)
		} else {
			narrow = append(narrow, b)
		}
	}

	widths := make([]float64, len(narrow))
	for i, b := range narrow {
		widths[i] = b.Width
	}
	for _, group := range PairRows(widths) {
		a1 := narrow[group[0]]
		if len(group) == 1 {
			rows = append(rows, a1)
			continue
		}
		a2 := narrow[group[1]]
		translate(a2.Items, a1.Width+margin, 0)
		items := make([]Primitive, 0, len(a1.Items)+len(a2.Items))
		items = append(append(items, a1.Items...), a2.Items...)
		rows = append(rows, Block{
			Items:    items,
			X:        a1.X,
			Y:        a1.Y,
			Width:    a1.Width + a2.Width + margin,
			Height:   a1.Height,
			LineInX:  a1.X,
			LineOutX: a1.X,
		})
	}
	return rows, maxW
}

// PairRows groups widths (sorted widest first) into rows of one or two.
// The two widest remaining entries share a row when they differ by at most
// the pair tolerance; otherwise the wider takes a row alone and the
// narrower is reconsidered with the next one. It returns index groups.
func PairRows(widths []float64) [][]int {
	var rows [][]int
	i := 0
	for i < len(widths) {
		if i+1 == len(widths) {
			rows = append(rows, []int{i})
			break
		}
		if widths[i]-widths[i+1] > pairTolerance {
			rows = append(rows, []int{i})
			i++
			continue
		}
		rows = append(rows, []int{i, i + 1})
		i += 2
	}
	return rows
}
