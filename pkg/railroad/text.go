package railroad

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

var printableEscapes = map[rune]string{
	'\n': `\n`,
	'\t': `\t`,
	'\f': `\f`,
	'\r': `\r`,
	'\\': `\\`,
	0:    `\0`,
}

// Printable escapes text for display inside a box. Whitespace controls and
// backslash use their familiar escapes, code units from U+009F upward
// become \uHHHH (astral runes as two surrogates) and remaining control
// characters become \xHH.
func Printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if esc, ok := printableEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		switch {
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04X\u%04X`, hi, lo)
		case r >= 0x9F:
			fmt.Fprintf(&b, `\u%04X`, r)
		case r <= 0x1F || (r >= 0x7F && r <= 0x9F):
			fmt.Fprintf(&b, `\x%02X`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (e *Engine) text(x, y float64, content string) *Text {
	return &Text{
		X: x, Y: y,
		Content:    content,
		FontFamily: e.opts.FontFamily,
		FontSize:   e.opts.FontSize,
		Color:      e.opts.FontColor,
	}
}

// textBox draws content in a rounded rectangle whose connector runs
// through its vertical centre.
func (e *Engine) textBox(content string, x, y float64) Block {
	content = Printable(content)
	pad := e.opts.Padding
	h := e.char.Height + pad + 4
	w := float64(len(content))*e.char.Width + pad*3 + 4
	return Block{
		Items:    []Primitive{e.rect(x, y-h/2, w, h), e.text(x+w/2, y, content)},
		X:        x,
		Y:        y - h/2,
		Width:    w,
		Height:   h,
		LineInX:  x,
		LineOutX: x + w,
	}
}

// label is a caption centred horizontally on a point and sitting above it.
// It is an overlay: callers decide where its text goes and how its size
// affects their own box.
type label struct {
	text *Text
	x, y float64
	w, h float64
}

const labelMargin = 4

func (e *Engine) label(content string, x, y float64) label {
	lines := strings.Split(content, "\n")
	widest := 0
	for _, l := range lines {
		if len(l) > widest {
			widest = len(l)
		}
	}
	th := float64(len(lines)) * e.char.Height
	tw := float64(widest) * e.char.Width
	return label{
		text: e.text(x, y-th/2-labelMargin, content),
		x:    x - tw/2,
		y:    y - th - labelMargin,
		w:    tw,
		h:    th + labelMargin,
	}
}
