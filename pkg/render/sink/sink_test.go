package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/parse"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

func testDiagram() *railroad.Diagram {
	s := railroad.Stroke{Color: "#333", Width: 2}
	return &railroad.Diagram{
		Width:  100,
		Height: 60,
		Items: []railroad.Primitive{
			&railroad.Circle{CX: 16, CY: 30, R: 6, Stroke: s},
			&railroad.Rect{X: 30, Y: 20, Width: 40, Height: 20, Radius: 6, Stroke: s},
			&railroad.Rect{X: 26, Y: 14, Width: 48, Height: 32, Radius: 6, Dashed: true, Stroke: railroad.Stroke{Color: "#999", Width: 1}},
			&railroad.Text{X: 50, Y: 30, Content: "a<b", FontFamily: "monospace", FontSize: 14, Color: "#444"},
			&railroad.Path{Commands: []railroad.Command{
				{Op: 'M', Args: []float64{22, 30}},
				{Op: 'H', Args: []float64{30}},
				{Op: 'Q', Args: []float64{35, 30, 35, 35}},
				{Op: 'V', Args: []float64{40}},
				{Op: 'C', Args: []float64{36, 40, 38, 41, 40, 42}},
			}, Stroke: s},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testDiagram()))

	wants := []string{
		`viewBox="0 0 100 60" width="100" height="60"`,
		`<circle cx="16" cy="30" r="6" fill="none" stroke="#333" stroke-width="2"/>`,
		`<rect x="30" y="20" width="40" height="20" rx="6" ry="6" fill="none" stroke="#333" stroke-width="2"/>`,
		`stroke-dasharray="3 1"`,
		`text-anchor="middle" dominant-baseline="central">a&lt;b</text>`,
		`d="M 22 30 H 30 Q 35 30 35 35 V 40 C 36 40 38 41 40 42"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG missing %q\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG should close the document")
	}
	if strings.Contains(svg, "<title>") {
		t.Error("no title expected without WithTitle")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testDiagram(), WithTitle("a|b&c"), WithBackground("#fff")))
	if !strings.Contains(svg, "<title>a|b&amp;c</title>") {
		t.Errorf("title not escaped:\n%s", svg)
	}
	if !strings.Contains(svg, `<rect x="0" y="0" width="100" height="60" fill="#fff"/>`) {
		t.Errorf("background missing:\n%s", svg)
	}
}

func TestRenderSVGMultilineText(t *testing.T) {
	d := &railroad.Diagram{Width: 10, Height: 10, Items: []railroad.Primitive{
		&railroad.Text{X: 5, Y: 5, Content: "Group #1\nname", FontSize: 14},
	}}
	svg := string(RenderSVG(d))
	if !strings.Contains(svg, `<tspan x="5" dy="-0.6em">Group #1</tspan><tspan x="5" dy="1.2em">name</tspan>`) {
		t.Errorf("multi-line text not split into tspans:\n%s", svg)
	}
}

func TestSVGCanvasSurface(t *testing.T) {
	var _ railroad.Surface = NewSVGCanvas()

	engine := railroad.New(railroad.DefaultOptions(), railroad.FixedMeasurer{CharWidth: 8, LineHeight: 16})
	canvas := NewSVGCanvas()
	if err := engine.Draw(canvas, "a", parse.Parser{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	d := canvas.Diagram()
	if d.Width != 124 || d.Height != 78 {
		t.Errorf("canvas = %vx%v, want 124x78", d.Width, d.Height)
	}
	if len(d.Items) != 6 {
		t.Errorf("canvas holds %d items, want 6", len(d.Items))
	}

	if err := engine.Draw(canvas, "", parse.Parser{}); err != nil {
		t.Fatalf("Draw empty: %v", err)
	}
	if d := canvas.Diagram(); d.Width != 0 || len(d.Items) != 0 {
		t.Errorf("empty source should clear the canvas, got %vx%v with %d items", d.Width, d.Height, len(d.Items))
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testDiagram(), WithJSONPattern("a<b"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Pattern string           `json:"pattern"`
		Width   float64          `json:"width"`
		Height  float64          `json:"height"`
		Items   []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Pattern != "a<b" || out.Width != 100 || out.Height != 60 {
		t.Errorf("header = %q %vx%v", out.Pattern, out.Width, out.Height)
	}
	var types []string
	for _, it := range out.Items {
		types = append(types, it["type"].(string))
	}
	if got, want := strings.Join(types, ","), "circle,rect,dashedRect,text,path"; got != want {
		t.Errorf("item types = %s, want %s", got, want)
	}
	if d := out.Items[4]["d"]; d != "M 22 30 H 30 Q 35 30 35 35 V 40 C 36 40 38 41 40 42" {
		t.Errorf("path d = %v", d)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(&railroad.Diagram{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"items": []`)) {
		t.Errorf("empty diagram should encode items as []:\n%s", data)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testDiagram(), WithScale(1.5), WithPNGBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 150 || b.Dy() != 90 {
		t.Errorf("image = %dx%d, want 150x90", b.Dx(), b.Dy())
	}
}

func TestRenderPNGFromLayout(t *testing.T) {
	nodes, err := parse.Parse(`(?<year>\d{4})-[a-f0-9]+|x*`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	engine := railroad.New(railroad.DefaultOptions(), nil)
	d, err := engine.Layout(nodes)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if _, err := RenderPNG(d); err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
}

func TestRenderPNGErrors(t *testing.T) {
	tests := []struct {
		name  string
		d     *railroad.Diagram
		scale float64
	}{
		{"zero scale", testDiagram(), 0},
		{"nan scale", testDiagram(), math.NaN()},
		{"empty diagram", &railroad.Diagram{}, 1},
		{"huge scale", testDiagram(), 1e4},
		{"huge diagram", &railroad.Diagram{Width: 1e6, Height: 1e6}, 1},
		{"just over the pixel limit", &railroad.Diagram{Width: 1 << 13, Height: 1<<13 + 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(tt.d, WithScale(tt.scale))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("RenderPNG() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestTracePathTracksCurrentPoint(t *testing.T) {
	// H and V must extend from the previous end point, not the origin.
	p := &railroad.Path{Commands: []railroad.Command{
		{Op: 'M', Args: []float64{5, 5}},
		{Op: 'H', Args: []float64{15}},
		{Op: 'V', Args: []float64{15}},
	}, Stroke: railroad.Stroke{Color: "#000000", Width: 2}}
	d := &railroad.Diagram{Width: 20, Height: 20, Items: []railroad.Primitive{p}}
	data, err := RenderPNG(d, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if _, _, _, a := img.At(10, 5).RGBA(); a == 0 {
		t.Error("horizontal segment not drawn at (10, 5)")
	}
	if _, _, _, a := img.At(15, 10).RGBA(); a == 0 {
		t.Error("vertical segment not drawn at (15, 10)")
	}
	if _, _, _, a := img.At(5, 15).RGBA(); a != 0 {
		t.Error("nothing should be drawn at (5, 15)")
	}
}
