// Package pkg provides the core libraries for regexrail railroad diagrams.
//
// # Overview
//
// regexrail turns a regular expression into a railroad (syntax) diagram: a
// left-to-right track with boxes for literals and classes, forks for
// alternation and loops for repetition. The pkg directory is organized
// around that flow:
//
//  1. [parse] - Pattern text to syntax tree
//  2. [ast] - Syntax tree types, validation and the JSON interchange format
//  3. [railroad] - Layout engine producing positioned primitives
//  4. [render] - Output formats for diagrams and trees
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
//	pattern string            AST JSON file
//	      ↓                         ↓
//	 [parse] package          [ast] package
//	      └────────────┬────────────┘
//	                   ↓
//	          [railroad] package (layout)
//	                   ↓
//	        [render/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/regexrail/pkg/parse"
//	    "github.com/matzehuels/regexrail/pkg/railroad"
//	    "github.com/matzehuels/regexrail/pkg/render/sink"
//	)
//
//	nodes, _ := parse.Parse(`a(b|c)*d`)
//	engine := railroad.New(railroad.DefaultOptions(), railroad.DefaultMeasurer(14))
//	d, _ := engine.Layout(nodes)
//	svg := sink.RenderSVG(d)
//
// # Main Packages
//
// [railroad] - The layout engine. Each node kind has a width and height
// rule; sequences, choices, loops and groups are composed from the sizes
// of their children. The result is a flat list of rects, paths and text.
//
// [fonts] - Text measurement from the embedded Go Mono face, used when
// label widths must match the rasterized output.
//
// [render/sink] - Diagram writers. SVG is written directly; PNG is
// rasterized with gg; PDF goes through rsvg-convert.
//
// [render/nodelink] - Graphviz rendering of the syntax tree, useful when
// debugging a pattern or the parser.
//
// [cache] - File, Redis and null caches with scoped key derivation.
//
// [config] - TOML and YAML configuration with XDG default paths.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events,
// plus a Prometheus implementation.
//
// [errors] - Structured errors with stable codes shared by the CLI and API.
//
// [ast]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/ast
// [parse]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/parse
// [railroad]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/railroad
// [fonts]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/regexrail/pkg/errors
package pkg
