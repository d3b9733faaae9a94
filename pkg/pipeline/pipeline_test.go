package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		view    string
		formats []string
		want    []string
		wantErr errors.Code
	}{
		{"", nil, []string{"svg"}, ""},
		{"railroad", []string{"svg", "png", "pdf", "json"}, []string{"svg", "png", "pdf", "json"}, ""},
		{"railroad", []string{"SVG", " png", "svg"}, []string{"svg", "png"}, ""},
		{"railroad", []string{"dot"}, nil, errors.ErrCodeInvalidFormat},
		{"tree", []string{"dot", "svg"}, []string{"dot", "svg"}, ""},
		{"tree", []string{"json"}, nil, errors.ErrCodeInvalidFormat},
		{"sideways", nil, nil, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		opts := Options{View: tt.view, Formats: tt.formats}
		err := opts.ValidateForRender()
		if tt.wantErr != "" {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForRender(%q, %v) = %v, want %s", tt.view, tt.formats, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateForRender(%q, %v) error = %v", tt.view, tt.formats, err)
			continue
		}
		if len(opts.Formats) != len(tt.want) {
			t.Errorf("ValidateForRender(%q, %v) formats = %v, want %v", tt.view, tt.formats, opts.Formats, tt.want)
			continue
		}
		for i := range tt.want {
			if opts.Formats[i] != tt.want[i] {
				t.Errorf("ValidateForRender(%q, %v) formats = %v, want %v", tt.view, tt.formats, opts.Formats, tt.want)
				break
			}
		}
	}
}

func TestValidateForRenderBounds(t *testing.T) {
	theme := func(edit func(*railroad.Options)) *railroad.Options {
		o := railroad.DefaultOptions()
		edit(&o)
		return &o
	}
	tests := []struct {
		name    string
		scale   float64
		theme   *railroad.Options
		wantErr bool
	}{
		{"default scale", 0, nil, false},
		{"max scale", MaxScale, nil, false},
		{"scale too large", 1e4, nil, true},
		{"negative scale", -1, nil, true},
		{"nan scale", math.NaN(), nil, true},
		{"infinite scale", math.Inf(1), nil, true},
		{"max padding", 0, theme(func(o *railroad.Options) { o.Padding = MaxThemeLength }), false},
		{"huge font", 0, theme(func(o *railroad.Options) { o.FontSize = 1e6 }), true},
		{"huge path", 0, theme(func(o *railroad.Options) { o.PathLen = 1e9 }), true},
		{"negative margin", 0, theme(func(o *railroad.Options) { o.ContentMargin = -1 }), true},
		{"nan padding", 0, theme(func(o *railroad.Options) { o.Padding = math.NaN() }), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Pattern: "a", Formats: []string{FormatPNG}, Scale: tt.scale, Theme: tt.theme}
			err := opts.ValidateAndSetDefaults()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateAndSetDefaults() error = %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestValidateForRenderDoesNotMutateCaller(t *testing.T) {
	formats := []string{"SVG"}
	opts := Options{Formats: formats}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if formats[0] != "SVG" {
		t.Errorf("caller slice modified: %v", formats)
	}
}

func TestValidateForParse(t *testing.T) {
	var empty Options
	if err := empty.ValidateForParse(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty pattern error = %v, want INVALID_INPUT", err)
	}

	withAST := Options{AST: []ast.Node{{Kind: ast.KindDot}}}
	if err := withAST.ValidateForParse(); err != nil {
		t.Errorf("AST without pattern should pass: %v", err)
	}
	if withAST.Logger == nil {
		t.Error("ValidateForParse should set a logger")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Pattern: "a"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.View != ViewRailroad {
		t.Errorf("View = %q, want railroad", opts.View)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if *opts.Theme != railroad.DefaultOptions() {
		t.Error("Theme should default to railroad.DefaultOptions()")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Pattern: "a", Formats: []string{"PNG"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.Formats[0]
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Formats[0] != first || first != "png" {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}
}

func TestValidateForRenderTheme(t *testing.T) {
	theme := railroad.DefaultOptions()
	theme.FontSize = 0
	opts := Options{Theme: &theme}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero font size error = %v, want INVALID_INPUT", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Pattern: "a"}
	opts.SetRenderDefaults()

	svg := opts.ArtifactKeyOpts(FormatSVG, MetricsFont)
	if svg.Scale != 0 {
		t.Errorf("SVG key should not depend on scale, got %v", svg.Scale)
	}
	png := opts.ArtifactKeyOpts(FormatPNG, MetricsFont)
	if png.Scale != DefaultScale {
		t.Errorf("PNG key scale = %v, want %v", png.Scale, DefaultScale)
	}
	if fixed := opts.ArtifactKeyOpts(FormatSVG, MetricsFixed); fixed.ThemeHash == svg.ThemeHash {
		t.Error("metrics source should change the theme hash")
	}

	theme := railroad.DefaultOptions()
	theme.BorderColor = "#f00"
	recolored := Options{Pattern: "a", Theme: &theme}
	recolored.SetRenderDefaults()
	if recolored.ArtifactKeyOpts(FormatSVG, MetricsFont).ThemeHash == svg.ThemeHash {
		t.Error("theme changes should change the theme hash")
	}

	tree := Options{Pattern: "a", View: ViewTree}
	tree.SetRenderDefaults()
	if got := tree.ArtifactKeyOpts(FormatDOT, MetricsFont).ThemeHash; got != "tree" {
		t.Errorf("tree theme hash = %q, want tree", got)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG:  "image/svg+xml",
		FormatPNG:  "image/png",
		FormatPDF:  "application/pdf",
		FormatJSON: "application/json",
		"bin":      "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}
