package cache

// ScopedKeyer wraps a Keyer with a prefix so several consumers can share
// one backend without their entries colliding.
//
// Example usage:
//
//	// HTTP service entries live apart from CLI entries in a shared Redis
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ASTKey generates a prefixed key for syntax tree caching.
func (k *ScopedKeyer) ASTKey(pattern string) string {
	return k.prefix + k.inner.ASTKey(pattern)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(astHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(astHash, opts)
}
