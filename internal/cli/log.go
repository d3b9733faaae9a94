// Package cli implements the regexrail command-line interface.
//
// This package provides commands for drawing regular expressions as railroad
// diagrams, dumping their syntax trees, previewing them interactively and
// serving the pipeline over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF or JSON railroad diagrams
//   - parse: Print the syntax tree of a pattern as JSON
//   - tree: Draw the syntax tree itself as a node-link graph
//   - explore: Edit a pattern and watch its layout update
//   - serve: Run the HTTP service
//   - cache: Manage the local artifact cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/regexrail/config.toml, or from
// the file named by --config (TOML, YAML or JSON).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level, with
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// commandLogger derives the logger for one subcommand. Its lines carry the
// command name as prefix, e.g. "14:32:01.45 INFO render: ...".
func commandLogger(l *log.Logger, name string) *log.Logger {
	if name == "" || name == appName {
		return l
	}
	return l.WithPrefix(name)
}

// progress logs the completion of a long-running step with its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and an "elapsed" field rounded to the
// millisecond, e.g. "Server stopped addr=:8080 elapsed=1m2.004s".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
