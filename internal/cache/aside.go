package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookclub/internal/middleware"
	"bookclub/internal/observability"
)

// Key templates and TTLs for cached entities.
const (
	postKeyPrefix      = "post:%d"
	clubPostsKeyPrefix = "club:%d:posts"

	// PostTTL bounds how long a single post detail is served from cache.
	PostTTL = 30 * time.Minute
	// ClubPostsTTL bounds how long the first page of a club's post list is
	// served from cache.
	ClubPostsTTL = 2 * time.Minute
)

// PostKey derives the cache key for a post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// ClubPostsKey derives the cache key for a club's default post listing.
func ClubPostsKey(clubID uint) string {
	return fmt.Sprintf(clubPostsKeyPrefix, clubID)
}

// Aside implements the cache-aside pattern: on hit, dest is populated from
// Redis; on miss, fetch runs and its result is stored under key. Cache
// failures degrade to the fetch path and are never surfaced to callers.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			observability.CacheHits.WithLabelValues(keyClass(key)).Inc()
			return nil
		}
		// Corrupt entry; drop it and fall through to the fetch path.
		client.Del(ctx, key)
	}
	observability.CacheMisses.WithLabelValues(keyClass(key)).Inc()

	if err := fetch(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		if setErr := client.Set(ctx, key, raw, ttl).Err(); setErr != nil {
			middleware.Logger.WarnContext(ctx, "cache set failed",
				slog.String("key", key),
				slog.String("error", setErr.Error()),
			)
		}
	}
	return nil
}

// keyClass reduces a cache key to its leading segment so metric labels stay
// low-cardinality ("post:42" and "post:7" both count under "post").
func keyClass(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost removes a post's detail entry and its club's listing entry.
func InvalidatePost(ctx context.Context, postID, clubID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, ClubPostsKey(clubID))
}
