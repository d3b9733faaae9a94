// Package cache stores parsed trees and rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: sharded JSON files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// Keys come from a [Keyer]. The pipeline caches the syntax tree of a
// pattern under [Keyer.ASTKey] and each rendered format under
// [Keyer.ArtifactKey], which folds in the tree hash, the theme hash and the
// raster scale. [ScopedKeyer] prefixes every key so that several consumers
// can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes. Trees depend only on the pattern and never go
// stale; artifacts are bounded so theme or renderer changes age out.
const (
	ASTTTL      = 30 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-blob store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl in Set means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
