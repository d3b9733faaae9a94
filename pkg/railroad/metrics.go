package railroad

import "strings"

// Measurer reports the rendered size of a piece of text. Multi-line text
// is split on '\n'.
type Measurer interface {
	Measure(text string) (width, height float64)
}

// metricsSample mixes wide, narrow, ascending and descending glyphs so the
// average is representative of typical patterns.
const metricsSample = "XgfTlM|.q\nXgfTlM|.q"

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// CharSize derives the average character advance and line height from m.
func CharSize(m Measurer) Size {
	w, h := m.Measure(metricsSample)
	perLine := len(metricsSample[:strings.IndexByte(metricsSample, '\n')])
	return Size{Width: w / float64(perLine), Height: h / 2}
}

// FixedMeasurer measures text as a grid of identical cells.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements [Measurer].
func (f FixedMeasurer) Measure(text string) (float64, float64) {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > widest {
			widest = n
		}
	}
	return float64(widest) * f.CharWidth, float64(len(lines)) * f.LineHeight
}
