package queries

import (
	"context"
	"time"
)

// Cache is the read-side cache used by the analytics handlers. Get returns an
// empty string on a miss, never an error. Stale reads are acceptable: the
// TTL is short and analytics tolerate slightly outdated numbers.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// analyticsCacheTTL bounds how stale a cached analytics summary may grow.
const analyticsCacheTTL = time.Minute
