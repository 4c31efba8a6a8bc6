package analytics

import (
	"fmt"
	"time"

	"batibill/internal/core/id"
)

// Cache is the metric store contract. The production implementation is
// an in-process TTL cache; tests use a map fake.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)

	// DeleteByPrefix evicts every key sharing the prefix. Used for
	// whole-tenant invalidation.
	DeleteByPrefix(prefix string)
}

// cacheKey builds the per-metric key, tenantPrefix the eviction prefix.
// Coarse whole-tenant eviction keeps invalidation independent of which
// metrics an entity actually feeds.
func cacheKey(tenantID id.ID, metric string) string {
	return tenantPrefix(tenantID) + metric
}

func tenantPrefix(tenantID id.ID) string {
	return fmt.Sprintf("analytics:%s:", tenantID)
}
