package sink

import (
	"encoding/json"

	"github.com/matzehuels/regexrail/pkg/railroad"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	pattern string
	theme   string
}

// WithJSONPattern records the pattern source in the output.
func WithJSONPattern(p string) JSONOption { return func(r *jsonRenderer) { r.pattern = p } }

// WithJSONTheme records the theme hash so consumers can tell renders apart.
func WithJSONTheme(hash string) JSONOption { return func(r *jsonRenderer) { r.theme = hash } }

type jsonOutput struct {
	Pattern string               `json:"pattern,omitempty"`
	Theme   string               `json:"theme,omitempty"`
	Width   float64              `json:"width"`
	Height  float64              `json:"height"`
	Items   []railroad.Primitive `json:"items"`
}

// RenderJSON exports the positioned primitives as a pretty-printed JSON
// document. Each item carries a "type" of circle, rect, dashedRect, text or
// path; paths hold both SVG path data and the command list.
func RenderJSON(d *railroad.Diagram, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	items := d.Items
	if items == nil {
		items = []railroad.Primitive{}
	}
	return json.MarshalIndent(jsonOutput{
		Pattern: r.pattern,
		Theme:   r.theme,
		Width:   d.Width,
		Height:  d.Height,
		Items:   items,
	}, "", "  ")
}
