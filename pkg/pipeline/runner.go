package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/cache"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/observability"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Metrics selects the text measurer: MetricsFont (default) or
	// MetricsFixed.
	Metrics string

	// ArtifactTTL overrides cache.ArtifactTTL when positive.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Metrics: MetricsFont,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	nodes, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Nodes = nodes
	result.ASTHash = HashAST(nodes)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = countNodes(nodes)
	result.CacheInfo.ParseHit = parseHit

	opts.Logger.Debug("parsed pattern",
		"nodes", result.Stats.NodeCount,
		"cached", parseHit,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	if !opts.IsTree() {
		layoutStart := time.Now()
		d, err := r.Layout(ctx, nodes, opts)
		if err != nil {
			return nil, err
		}
		result.Diagram = d
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.PrimitiveCount = len(d.Items)
		result.Stats.Width, result.Stats.Height = d.Width, d.Height

		opts.Logger.Debug("computed layout",
			"primitives", len(d.Items),
			"size", railroad.FormatFloat(d.Width)+"x"+railroad.FormatFloat(d.Height),
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, nodes, result.Diagram, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered diagram",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo produces the syntax tree with caching and returns cache hit info.
// A tree given in opts.AST is validated and returned as is.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) ([]ast.Node, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	if opts.AST != nil {
		if err := ast.Validate(opts.AST); err != nil {
			return nil, false, err
		}
		return opts.AST, false, nil
	}

	cacheKey := r.Keyer.ASTKey(opts.Pattern)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if nodes, err := ast.DecodeJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "ast")
				return nodes, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "ast")
	}

	nodes, err := Parse(ctx, opts.Pattern)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(nodes); err == nil {
		r.store(ctx, "ast", cacheKey, data, cache.ASTTTL)
	}
	return nodes, false, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]ast.Node, error) {
	nodes, _, err := r.ParseWithCacheInfo(ctx, opts)
	return nodes, err
}

// Layout positions the railroad diagram for nodes. Layouts are not cached:
// they take microseconds and their primitives only exist to be rendered.
func (r *Runner) Layout(ctx context.Context, nodes []ast.Node, opts Options) (*railroad.Diagram, error) {
	opts.SetLayoutDefaults()
	m, err := NewMeasurer(r.metrics(), opts.Theme.FontSize)
	if err != nil {
		return nil, err
	}
	return Layout(ctx, nodes, *opts.Theme, m)
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// d may be nil for the tree view.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, nodes []ast.Node, d *railroad.Diagram, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if !opts.IsTree() && d == nil {
		return nil, false, errors.New(errors.ErrCodeInternal, "railroad render without a layout")
	}

	astHash := HashAST(nodes)
	metrics := r.metrics()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(astHash, opts.ArtifactKeyOpts(format, metrics))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, nodes, d, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(astHash, opts.ArtifactKeyOpts(format, metrics))
		r.store(ctx, "artifact", key, data, r.artifactTTL())
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, nodes []ast.Node, d *railroad.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, nodes, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) metrics() string {
	if r.Metrics == "" {
		return MetricsFont
	}
	return r.Metrics
}

func (r *Runner) artifactTTL() time.Duration {
	if r.ArtifactTTL > 0 {
		return r.ArtifactTTL
	}
	return cache.ArtifactTTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// HashAST returns the content hash of the tree's JSON encoding.
func HashAST(nodes []ast.Node) string {
	data, _ := json.Marshal(nodes)
	return cache.Hash(data)
}

func countNodes(nodes []ast.Node) int {
	n := 0
	ast.Walk(nodes, func(ast.Node) bool { n++; return true })
	return n
}
