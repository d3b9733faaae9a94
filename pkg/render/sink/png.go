package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/fonts"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// maxPNGPixels caps the raster size; 1<<26 pixels is 256 MiB of RGBA.
const maxPNGPixels = 1 << 26

// FaceFunc returns a face for text of the given pixel size.
type FaceFunc func(size float64) (font.Face, error)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	face       FaceFunc
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground fills the image with a hex color. The default is
// transparent.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// WithPNGFace overrides the typeface used for labels.
func WithPNGFace(f FaceFunc) PNGOption {
	return func(r *pngRenderer) { r.face = f }
}

// RenderPNG rasterises the diagram directly, without an SVG round trip.
// Colors must be hex strings ("#333", "#a0b0c0").
func RenderPNG(d *railroad.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, face: fonts.Face}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}

	fw := math.Ceil(d.Width * r.scale)
	fh := math.Ceil(d.Height * r.scale)
	if !(fw > 0 && fh > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rasterise an empty diagram")
	}
	if !(fw*fh <= maxPNGPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %.0fx%.0f pixels exceeds the %d pixel limit; lower the scale", fw, fh, maxPNGPixels)
	}
	w, h := int(fw), int(fh)

	dc := gg.NewContext(w, h)
	if r.background != "" {
		dc.SetHexColor(r.background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	faces := map[float64]font.Face{}
	for _, it := range d.Items {
		if err := r.draw(dc, it, faces); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) draw(dc *gg.Context, p railroad.Primitive, faces map[float64]font.Face) error {
	switch v := p.(type) {
	case *railroad.Circle:
		dc.DrawCircle(v.CX, v.CY, v.R)
		r.stroke(dc, v.Stroke, false)
	case *railroad.Rect:
		dc.DrawRoundedRectangle(v.X, v.Y, v.Width, v.Height, v.Radius)
		r.stroke(dc, v.Stroke, v.Dashed)
	case *railroad.Path:
		tracePath(dc, v)
		r.stroke(dc, v.Stroke, false)
	case *railroad.Text:
		return r.text(dc, v, faces)
	}
	return nil
}

// stroke strokes the current path. gg applies line width and dashes in
// device space, so both are scaled by hand.
func (r *pngRenderer) stroke(dc *gg.Context, s railroad.Stroke, dashed bool) {
	dc.SetHexColor(s.Color)
	dc.SetLineWidth(s.Width * r.scale)
	if dashed {
		dc.SetDash(3*r.scale, 1*r.scale)
	} else {
		dc.SetDash()
	}
	dc.Stroke()
}

// tracePath replays the commands, tracking the current point for H and V.
func tracePath(dc *gg.Context, p *railroad.Path) {
	var cx, cy float64
	for _, c := range p.Commands {
		a := c.Args
		switch c.Op {
		case 'M':
			cx, cy = a[0], a[1]
			dc.MoveTo(cx, cy)
		case 'H':
			cx = a[0]
			dc.LineTo(cx, cy)
		case 'V':
			cy = a[0]
			dc.LineTo(cx, cy)
		case 'Q':
			cx, cy = a[2], a[3]
			dc.QuadraticTo(a[0], a[1], cx, cy)
		case 'C':
			cx, cy = a[4], a[5]
			dc.CubicTo(a[0], a[1], a[2], a[3], cx, cy)
		}
	}
}

// text draws each line centred on the label's anchor. Glyphs are placed in
// device space because gg measures anchored strings with the unscaled face.
func (r *pngRenderer) text(dc *gg.Context, t *railroad.Text, faces map[float64]font.Face) error {
	size := t.FontSize * r.scale
	face, ok := faces[size]
	if !ok {
		f, err := r.face(size)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "load font face")
		}
		faces[size] = f
		face = f
	}

	lines := t.Lines()
	lineHeight := size * lineHeightEm
	x := t.X * r.scale
	y := t.Y*r.scale - float64(len(lines)-1)*lineHeight/2

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFontFace(face)
	dc.SetHexColor(t.Color)
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, y+float64(i)*lineHeight, 0.5, 0.5)
	}
	return nil
}
