package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the optional Redis client used for rendered itinerary
// snapshots. It is nil when REDIS_ADDR is unset or unreachable; callers
// fall back to direct database reads.
var Cache *redis.Client

func ConnectCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return
	}

	Cache = client
}

// CacheTTL is the lifetime of a cached itinerary snapshot. Saves
// invalidate eagerly, so the TTL only bounds staleness after out-of-band
// writes.
func CacheTTL() time.Duration {
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 15 * time.Minute
}
