package cache

import "strconv"

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// ASTKey is the key of the syntax tree parsed from pattern.
	ASTKey(pattern string) string

	// ArtifactKey is the key of one rendered format of the tree whose
	// JSON encoding hashes to astHash.
	ArtifactKey(astHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	ThemeHash string  `json:"theme"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer derives keys by hashing their inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ASTKey(pattern string) string {
	return hashKey("ast", pattern)
}

func (DefaultKeyer) ArtifactKey(astHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, astHash, opts.ThemeHash, strconv.FormatFloat(opts.Scale, 'f', -1, 64))
}

var _ Keyer = DefaultKeyer{}
