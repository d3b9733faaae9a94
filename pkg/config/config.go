// Package config loads regexrail settings from a TOML, YAML or JSON file.
//
// A file only needs the keys it changes: decoding happens over
// [Default], so absent keys keep their defaults and unknown keys are
// ignored.
//
//	# ~/.config/regexrail/config.toml
//	[theme]
//	borderColor = "#0b6e4f"
//	fontSize = 16
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 3
//
//	[cache]
//	backend = "redis"
//	redisURL = "redis://localhost:6379/0"
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/pipeline"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// AppName names the config and cache directories.
const AppName = "regexrail"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full settings document.
type Config struct {
	Theme  railroad.Options `json:"theme" toml:"theme" yaml:"theme"`
	Render RenderConfig     `json:"render" toml:"render" yaml:"render"`
	Cache  CacheConfig      `json:"cache" toml:"cache" yaml:"cache"`
	Server ServerConfig     `json:"server" toml:"server" yaml:"server"`
}

// RenderConfig controls artifact output.
type RenderConfig struct {
	Formats    []string `json:"formats" toml:"formats" yaml:"formats"`
	Scale      float64  `json:"scale" toml:"scale" yaml:"scale"`
	Background string   `json:"background" toml:"background" yaml:"background"`
	// Metrics selects how label widths are measured: "font" uses the
	// embedded Go Mono face, "fixed" a 0.6em advance.
	Metrics string `json:"metrics" toml:"metrics" yaml:"metrics"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend  string   `json:"backend" toml:"backend" yaml:"backend"`
	Dir      string   `json:"dir" toml:"dir" yaml:"dir"`
	RedisURL string   `json:"redisURL" toml:"redisURL" yaml:"redisURL"`
	TTL      Duration `json:"ttl" toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string   `json:"addr" toml:"addr" yaml:"addr"`
	ReadTimeout  Duration `json:"readTimeout" toml:"readTimeout" yaml:"readTimeout"`
	WriteTimeout Duration `json:"writeTimeout" toml:"writeTimeout" yaml:"writeTimeout"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme: railroad.DefaultOptions(),
		Render: RenderConfig{
			Formats: []string{"svg"},
			Scale:   2,
			Metrics: pipeline.MetricsFont,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml, .yaml/.yml or .json.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Decode(data, filepath.Ext(path))
}

// LoadDefault loads the file at [DefaultPath] if it exists and returns the
// defaults otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Decode parses data in the format named by ext over the defaults and
// validates the result.
func Decode(data []byte, ext string) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	case "json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the decoders cannot.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redisURL is required for the redis backend")
	}
	switch c.Render.Metrics {
	case pipeline.MetricsFont, pipeline.MetricsFixed:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown metrics source %q", c.Render.Metrics)
	}
	if !(c.Render.Scale > 0) || c.Render.Scale > pipeline.MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be in (0, %v]", pipeline.MaxScale)
	}
	if c.Theme.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "theme.fontSize must be positive")
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/regexrail/config.toml (~/.config on
// Linux when unset).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/regexrail/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
