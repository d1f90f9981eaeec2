package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys and TTLs for the feedback board lists. The board read is a full table
// scan, so list results are kept briefly and dropped on every mutation.
const (
	BugListKey     = "board:bugs"
	FeatureListKey = "board:features"

	BoardTTL = 30 * time.Second
)

// Aside implements the cache-aside pattern: on a hit, dest is decoded from the
// cached JSON; on a miss, fill is called and its result is stored under key.
// With no Redis client the fill runs directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client == nil {
		return fill()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry; drop it and fall through to the fill.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis unavailable mid-flight; serve from the source.
		return fill()
	}

	if err := fill(); err != nil {
		return err
	}

	if encoded, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

// Invalidate removes a single key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateBoard drops both board lists. Called after every mutating operation.
func InvalidateBoard(ctx context.Context) {
	if client != nil {
		client.Del(ctx, BugListKey, FeatureListKey)
	}
}
