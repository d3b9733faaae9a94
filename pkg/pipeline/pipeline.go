// Package pipeline provides the parse → layout → render pipeline for regexrail.
//
// This package implements the complete pipeline that the CLI and the HTTP
// service share, so both entry points cache, log and report the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn the pattern into a syntax tree (or accept a tree given as JSON)
//  2. Layout: Position the railroad diagram for the tree
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Views
//
// The railroad view (default) draws the diagram. The tree view draws the
// syntax tree itself as a node-link graph and skips the layout stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Pattern: `^(?<user>\w+)@example\.com$`,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/cache"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// MaxScale bounds the PNG scale factor accepted from callers.
const MaxScale = 8.0

// MaxThemeLength bounds every length in a caller-supplied theme, in pixels.
const MaxThemeLength = 256.0

// Views.
const (
	ViewRailroad = "railroad"
	ViewTree     = "tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// RailroadFormats are the formats of the railroad view.
var RailroadFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// TreeFormats are the formats of the tree view.
var TreeFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// ContentType returns the MIME type of a rendered format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of Pattern and AST is used; AST wins.
	Pattern string     `json:"pattern,omitempty"`
	AST     []ast.Node `json:"ast,omitempty"`
	Refresh bool       `json:"refresh,omitempty"`

	// Layout options. A nil Theme means railroad.DefaultOptions().
	View  string            `json:"view,omitempty"`
	Theme *railroad.Options `json:"theme,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // tree view: list class members

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Nodes is the syntax tree.
	Nodes []ast.Node

	// ASTHash is the content hash of the tree's JSON encoding.
	ASTHash string

	// Diagram is the positioned railroad diagram (nil for the tree view).
	Diagram *railroad.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	PrimitiveCount int
	Width, Height  float64
	ParseTime      time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that there is something to parse.
func (o *Options) ValidateForParse() error {
	if o.AST == nil {
		if err := errors.ValidatePattern(o.Pattern); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.View == "" {
		o.View = ViewRailroad
	}
	if o.Theme == nil {
		theme := railroad.DefaultOptions()
		o.Theme = &theme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.SetLayoutDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering. Formats are
// normalised to lower case.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()

	allowed := RailroadFormats
	switch o.View {
	case ViewRailroad:
	case ViewTree:
		allowed = TreeFormats
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown view %q (want railroad or tree)", o.View)
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		norm, err := errors.ValidateFormat(f, allowed...)
		if err != nil {
			return err
		}
		if !slices.Contains(formats, norm) {
			formats = append(formats, norm)
		}
	}
	o.Formats = formats
	if !(o.Scale > 0) || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %v], got %v", MaxScale, o.Scale)
	}
	return validateTheme(o.Theme)
}

func validateTheme(t *railroad.Options) error {
	if t.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "theme fontSize must be positive")
	}
	lengths := []struct {
		name string
		v    float64
	}{
		{"contentMargin", t.ContentMargin},
		{"borderWidth", t.BorderWidth},
		{"borderRadius", t.BorderRadius},
		{"groupBorderWidth", t.GroupBorderWidth},
		{"fontSize", t.FontSize},
		{"pathLen", t.PathLen},
		{"padding", t.Padding},
		{"labelMargin", t.LabelMargin},
		{"pointR", t.PointR},
	}
	for _, l := range lengths {
		// NaN fails both comparisons, so test the accepted range.
		if !(l.v >= 0 && l.v <= MaxThemeLength) {
			return errors.New(errors.ErrCodeInvalidInput, "theme %s must be in [0, %v], got %v", l.name, MaxThemeLength, l.v)
		}
	}
	return nil
}

// IsTree returns true if this run draws the syntax tree.
func (o *Options) IsTree() bool {
	return o.View == ViewTree
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// metrics names the text measurer, since it changes every box width.
func (o *Options) ArtifactKeyOpts(format, metrics string) cache.ArtifactKeyOpts {
	theme := o.Theme.Hash()
	switch {
	case o.IsTree():
		theme = ViewTree
		if o.Detailed {
			theme += ":detailed"
		}
	default:
		theme = cache.Hash([]byte(theme + "|" + metrics + "|" + o.Background))
	}
	opts := cache.ArtifactKeyOpts{Format: format, ThemeHash: theme}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
