package railroad

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Options controls diagram geometry and styling. Keys are the same in
// JSON, TOML and YAML, so a theme written for the config file also works
// in an API request.
type Options struct {
	ContentMargin    float64 `json:"contentMargin" toml:"contentMargin" yaml:"contentMargin"`
	BorderColor      string  `json:"borderColor" toml:"borderColor" yaml:"borderColor"`
	BorderWidth      float64 `json:"borderWidth" toml:"borderWidth" yaml:"borderWidth"`
	BorderRadius     float64 `json:"borderRadius" toml:"borderRadius" yaml:"borderRadius"`
	GroupBorderColor string  `json:"groupBorderColor" toml:"groupBorderColor" yaml:"groupBorderColor"`
	GroupBorderWidth float64 `json:"groupBorderWidth" toml:"groupBorderWidth" yaml:"groupBorderWidth"`
	FontFamily       string  `json:"fontFamily" toml:"fontFamily" yaml:"fontFamily"`
	FontColor        string  `json:"fontColor" toml:"fontColor" yaml:"fontColor"`
	FontSize         float64 `json:"fontSize" toml:"fontSize" yaml:"fontSize"`
	PathLen          float64 `json:"pathLen" toml:"pathLen" yaml:"pathLen"`
	Padding          float64 `json:"padding" toml:"padding" yaml:"padding"`
	LabelMargin      float64 `json:"labelMargin" toml:"labelMargin" yaml:"labelMargin"`
	PointR           float64 `json:"pointR" toml:"pointR" yaml:"pointR"`
}

// DefaultOptions returns the stock theme.
func DefaultOptions() Options {
	return Options{
		ContentMargin:    10,
		BorderColor:      "#333",
		BorderWidth:      2,
		BorderRadius:     6,
		GroupBorderColor: "#999",
		GroupBorderWidth: 1,
		FontFamily:       "DejaVu Sans Mono,monospace",
		FontColor:        "#444",
		FontSize:         14,
		PathLen:          16,
		Padding:          12,
		LabelMargin:      6,
		PointR:           6,
	}
}

// Hash returns a stable digest of the options for cache keys.
func (o Options) Hash() string {
	data, _ := json.Marshal(o)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
