package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw gateway responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis. A nil *RedisCache is a no-op cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL, which is either a redis:// URL or a
// host:port address, and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL, password string) (*RedisCache, error) {
	var opts *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: redisURL}
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: rdb}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r == nil || r.client == nil {
		return nil, false, nil
	}
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// CachedGateway serves repeated searches and detail lookups from a Cache.
// Cache failures are logged and fall through to the wrapped gateway.
type CachedGateway struct {
	next   Gateway
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedGateway wraps next with cache. A nil cache or non-positive ttl
// returns next unchanged.
func NewCachedGateway(next Gateway, cache Cache, ttl time.Duration, logger *slog.Logger) Gateway {
	if cache == nil || ttl <= 0 {
		return next
	}
	return &CachedGateway{next: next, cache: cache, ttl: ttl, logger: logger}
}

func SearchKey(query string) string {
	return "tmdb:search:" + strings.ToLower(strings.TrimSpace(query))
}

func MovieKey(externalID int64) string {
	return "tmdb:movie:" + strconv.FormatInt(externalID, 10)
}

func (g *CachedGateway) SearchMovies(ctx context.Context, query string) ([]SearchResult, error) {
	key := SearchKey(query)

	var cached []SearchResult
	if g.load(ctx, key, &cached) {
		return cached, nil
	}

	results, err := g.next.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}
	g.store(ctx, key, results)
	return results, nil
}

func (g *CachedGateway) MovieDetails(ctx context.Context, externalID int64) (*MovieDetails, error) {
	key := MovieKey(externalID)

	var cached MovieDetails
	if g.load(ctx, key, &cached) {
		return &cached, nil
	}

	details, err := g.next.MovieDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}
	g.store(ctx, key, details)
	return details, nil
}

func (g *CachedGateway) load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.logger.Warn("cache_get_failed", "key", key, "error", err)
		return false
	}
	if !ok {
		g.logger.Debug("cache_miss", "key", key)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		g.logger.Warn("cache_decode_failed", "key", key, "error", err)
		return false
	}
	g.logger.Debug("cache_hit", "key", key)
	return true
}

func (g *CachedGateway) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		g.logger.Warn("cache_encode_failed", "key", key, "error", err)
		return
	}
	if err := g.cache.Set(ctx, key, raw, g.ttl); err != nil {
		g.logger.Warn("cache_set_failed", "key", key, "error", err)
	}
}
