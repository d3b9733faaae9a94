package cache

import (
	"context"
	"time"
)

// NullCache drops every write and misses every read. The CLI falls back to
// it for --no-cache, for the "none" backend and when no cache directory can
// be resolved, so the pipeline never needs a nil check.
type NullCache struct{}

func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
