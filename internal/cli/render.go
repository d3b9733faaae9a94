package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/pipeline"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// defaultBase names output files when neither -o nor --ast gives one.
const defaultBase = "diagram"

// renderFlags holds the command-line flags shared by render and tree.
type renderFlags struct {
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated output formats
	noCache bool   // disable caching
	refresh bool   // bypass cached results
}

func (f *renderFlags) register(cmd *cobra.Command, formatHelp string, formats []string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", formatHelp)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formats))
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// renderCommand creates the render command for drawing railroad diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      renderFlags
		astFile    string
		scale      float64
		background string
	)

	cmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "Render a pattern as a railroad diagram",
		Long: `Render a regular expression as a railroad diagram.

The pattern is parsed (or a syntax tree is read with --ast), laid out and
written in every requested format. Results are cached locally.

Examples:
  regexrail render '^\d{3}-\d{4}$'                  # diagram.svg
  regexrail render 'a|b' -f svg,png -o out/choice    # out/choice.svg, out/choice.png
  regexrail render --ast tree.json -f pdf            # tree.railroad.pdf
  regexrail render 'colou?r' -o -                    # SVG to stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			base := defaultBase
			switch {
			case astFile != "":
				nodes, err := readASTFile(astFile)
				if err != nil {
					return err
				}
				opts.AST = nodes
				if astFile != "-" {
					base = strings.TrimSuffix(astFile, filepath.Ext(astFile)) + ".railroad"
				}
			case len(args) == 1:
				opts.Pattern = args[0]
			default:
				return errors.New(errors.ErrCodeInvalidInput, "give a pattern or --ast file")
			}

			opts.Formats = parseFormats(flags.formats, opts.Formats)
			opts.Refresh = flags.refresh
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			if cmd.Flags().Changed("background") {
				opts.Background = background
			}
			return c.runRender(cmd.Context(), opts, flags, base)
		},
	}

	flags.register(cmd, "output format(s): svg (default), png, pdf, json (comma-separated)", pipeline.RailroadFormats)
	cmd.Flags().StringVar(&astFile, "ast", "", "read the syntax tree from a JSON file (- for stdin)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&background, "background", "", "background color (default transparent)")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags, base string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	toStdout := flags.output == "-"
	if toStdout && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes a single format, got %s", strings.Join(opts.Formats, ","))
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, "Rendering "+describe(opts))
	if !toStdout {
		spin.run()
	}
	result, err := runner.Execute(ctx, opts)
	switch {
	case spin.interrupted():
		spin.stop()
		return ctx.Err()
	case err != nil:
		if toStdout {
			return err
		}
		spin.fail("Render failed")
		return err
	}
	spin.stop()

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(flags.output, base, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", describe(opts))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.NodeCount, result.Stats.PrimitiveCount, result.CacheInfo.RenderHit)
	if result.Diagram != nil {
		printDetail("%sx%s px", railroad.FormatFloat(result.Diagram.Width), railroad.FormatFloat(result.Diagram.Height))
	}
	return nil
}

// describe names the input of a run for status lines.
func describe(opts pipeline.Options) string {
	if opts.AST != nil {
		return "syntax tree"
	}
	return StyleHighlight.Render("/" + opts.Pattern + "/")
}

// outputPaths derives one path per format.
// A single format writes to output as given (or base.format). Several
// formats share the base path output with its format extension stripped.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	b := basePath(output, base, formats)
	for _, f := range formats {
		paths[f] = b + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or falls back to
// base when output is empty.
func basePath(output, base string, formats []string) string {
	if output == "" {
		return base
	}
	ext := filepath.Ext(output)
	if slices.Contains(formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// readASTFile reads a syntax tree from path, or stdin for "-".
func readASTFile(path string) ([]ast.Node, error) {
	if path == "-" {
		return ast.ReadJSON(os.Stdin)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "syntax tree %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ast.ReadJSON(f)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
