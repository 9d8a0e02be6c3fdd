// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// payload.go provides a Valkey-backed cache for public JSON payloads
// (homepage and article listings). Entries are short-lived and flushed
// wholesale on any content mutation, so staleness is bounded both ways.
// Article detail responses are never cached here: a cache hit would swallow
// the per-view counter increment.
package cache

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// payloadKeyPrefix namespaces all cached payloads.
	payloadKeyPrefix = "payload:"

	// DefaultPayloadTTL is how long a cached payload stays valid without an
	// explicit invalidation.
	DefaultPayloadTTL = 5 * time.Minute
)

// PayloadCache manages cached JSON payloads in Valkey. A nil *PayloadCache
// is a valid no-op cache, so callers degrade to direct reads when the cache
// server is unavailable.
type PayloadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPayloadCache creates a payload cache backed by the given Valkey client.
func NewPayloadCache(client *redis.Client, ttl time.Duration) *PayloadCache {
	if ttl == 0 {
		ttl = DefaultPayloadTTL
	}
	return &PayloadCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or cache error.
func (pc *PayloadCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, payloadKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("payload cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("payload cache hit", "key", key)
	return val, true
}

// Set stores a payload with the configured TTL.
func (pc *PayloadCache) Set(ctx context.Context, key string, payload []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, payloadKeyPrefix+key, payload, pc.ttl).Err(); err != nil {
		slog.Warn("payload cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached payload by scanning for the prefix.
// Called on any article or category mutation — the listing composition makes
// finer-grained invalidation not worth the bookkeeping.
func (pc *PayloadCache) InvalidateAll(ctx context.Context) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, payloadKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("payload cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("payload cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("payload cache cleared", "deleted", deleted)
	}
}

// HomeKey returns the cache key for the homepage payload.
func HomeKey() string {
	return "home"
}

// ListingKey returns a canonical cache key for a listing request. Query
// parameters are sorted so equivalent requests share an entry regardless of
// parameter order.
func ListingKey(query url.Values) string {
	params := []string{"category", "search", "page", "page_size"}
	sort.Strings(params)

	var b strings.Builder
	b.WriteString("listing")
	for _, p := range params {
		if v := query.Get(p); v != "" {
			b.WriteString("|")
			b.WriteString(p)
			b.WriteString("=")
			b.WriteString(v)
		}
	}
	return b.String()
}
