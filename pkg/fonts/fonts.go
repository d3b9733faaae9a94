// Package fonts measures and rasterises diagram text with the embedded Go
// Mono typeface.
//
// Go Mono ships with golang.org/x/image, so text metrics are identical on
// every machine and need no system fonts. Browsers rendering the SVG output
// substitute the configured font family; since that family is monospace the
// measured advances stay close.
package fonts

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS family of the embedded face.
const FontFamily = "Go Mono"

var (
	monoFont    *truetype.Font
	monoFontErr error
	monoOnce    sync.Once
)

func mono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoFontErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoFontErr
}

// Measurer measures text set in Go Mono at a fixed pixel size. It
// satisfies railroad.Measurer.
type Measurer struct {
	face font.Face
	mu   sync.Mutex
}

// NewMeasurer returns a measurer for text of the given size in pixels.
func NewMeasurer(size float64) (*Measurer, error) {
	f, err := mono()
	if err != nil {
		return nil, err
	}
	return &Measurer{face: NewFace(f, size)}, nil
}

// MustMeasurer is NewMeasurer that panics on error. The embedded font is
// known good, so this only fails if the binary is corrupt.
func MustMeasurer(size float64) *Measurer {
	m, err := NewMeasurer(size)
	if err != nil {
		panic(err)
	}
	return m
}

// NewFace returns a face of f at size pixels (72 DPI, so points equal
// pixels).
func NewFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// Face returns a new Go Mono face for rasterising text at size pixels.
func Face(size float64) (font.Face, error) {
	f, err := mono()
	if err != nil {
		return nil, err
	}
	return NewFace(f, size), nil
}

// Measure returns the width of the widest line and the total height of
// all lines.
func (m *Measurer) Measure(text string) (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := strings.Split(text, "\n")
	var widest fixed.Int26_6
	for _, l := range lines {
		if w := font.MeasureString(m.face, l); w > widest {
			widest = w
		}
	}
	lineHeight := m.face.Metrics().Height
	return toFloat(widest), toFloat(lineHeight) * float64(len(lines))
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
