package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/regexrail/pkg/cache"
	"github.com/matzehuels/regexrail/pkg/config"
	"github.com/matzehuels/regexrail/pkg/pipeline"
)

// isolate points the config and cache homes at fresh temp directories and
// returns the cache home.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	return home
}

// runCLI executes the root command with args and returns what commands
// wrote to their output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	def := []string{"png"}
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses default", "", []string{"png"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg, ,json ", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, def)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		base    string
		formats []string
		want    map[string]string
	}{
		{"default single", "", "diagram", []string{"svg"}, map[string]string{"svg": "diagram.svg"}},
		{"explicit single", "out/x.png", "diagram", []string{"png"}, map[string]string{"png": "out/x.png"}},
		{"multiple from base", "", "tree", []string{"svg", "json"}, map[string]string{"svg": "tree.svg", "json": "tree.json"}},
		{"multiple strips extension", "out/x.svg", "diagram", []string{"svg", "png"}, map[string]string{"svg": "out/x.svg", "png": "out/x.png"}},
		{"multiple keeps foreign extension", "out/x.v2", "diagram", []string{"svg", "png"}, map[string]string{"svg": "out/x.v2.svg", "png": "out/x.v2.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.base, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	c := New(io.Discard, LogInfo)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	c.Config.Cache.Dir = "/srv/regexrail"
	if dir, _ := c.cacheDir(); dir != "/srv/regexrail" {
		t.Errorf("cacheDir() with config dir = %q, want /srv/regexrail", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	ch, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(*cache.FileCache); !ok {
		t.Errorf("file backend = %T, want *cache.FileCache", ch)
	}

	if ch, _ := c.newCache(ctx, true); ch == nil {
		t.Error("--no-cache should still return a cache")
	} else if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("--no-cache = %T, want *cache.NullCache", ch)
	}

	c.Config.Cache.Backend = config.BackendNone
	if ch, _ := c.newCache(ctx, false); ch != nil {
		if _, ok := ch.(*cache.NullCache); !ok {
			t.Errorf("none backend = %T, want *cache.NullCache", ch)
		}
	}

	mr := miniredis.RunT(t)
	c.Config.Cache.Backend = config.BackendRedis
	c.Config.Cache.RedisURL = "redis://" + mr.Addr()
	ch, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("redis backend: %v", err)
	}
	defer ch.Close()
	if _, ok := ch.(*cache.RedisCache); !ok {
		t.Errorf("redis backend = %T, want *cache.RedisCache", ch)
	}
}

func TestRunnerFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Render.Metrics = pipeline.MetricsFixed

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if r.Metrics != pipeline.MetricsFixed {
		t.Errorf("Metrics = %q, want fixed", r.Metrics)
	}
	if r.ArtifactTTL != c.Config.Cache.TTL.Duration {
		t.Errorf("ArtifactTTL = %v, want %v", r.ArtifactTTL, c.Config.Cache.TTL.Duration)
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "regexrail.toml")
	cfg := "[render]\nmetrics = \"fixed\"\n\n[theme]\nborderColor = \"#0b6e4f\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "a.svg")
	if _, err := runCLI(t, "--config", cfgPath, "render", "a", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`stroke="#0b6e4f"`)) {
		t.Error("config theme not applied")
	}
}

func TestConfigFlagMissing(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "cache", "path")
	if err == nil {
		t.Fatal("expected error for a missing --config file")
	}
}

func TestCompleteFormats(t *testing.T) {
	complete := completeFormats(pipeline.RailroadFormats)
	tests := []struct {
		typed string
		want  []string
	}{
		{"", []string{"svg", "png", "pdf", "json"}},
		{"p", []string{"png", "pdf"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,json"}},
		{"svg,png,J", []string{"svg,png,json"}},
	}
	for _, tt := range tests {
		got, _ := complete(nil, nil, tt.typed)
		if !slices.Equal(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.typed, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out, "regexrail") {
		t.Error("bash completion script should mention the program name")
	}
}
