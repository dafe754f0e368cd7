// Package cache stores serialized match responses in Redis, keyed by corpus
// version and a canonical form of the candidate.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/skills"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "skillmatch:match:"

// MatchCache is a Redis-backed response cache. A nil *MatchCache is a valid
// always-miss cache.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis using cfg. It does not ping; call Ping to verify.
func New(cfg config.RedisConfig) *MatchCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return NewWithClient(client, cfg.TTL)
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *MatchCache {
	return &MatchCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection
func (c *MatchCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *MatchCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get decodes the cached value for key into dst. It reports false on a miss.
func (c *MatchCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores value under key with the configured TTL.
func (c *MatchCache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Key builds the cache key for a request kind against a corpus version.
// Skills are normalized, deduplicated and sorted so that equivalent
// candidates share a key. extra carries request options such as limits or
// salary bounds.
func Key(kind, version string, k *skills.Knowledge, candidateSkills []string, years float64, extra ...string) string {
	if k == nil {
		k = skills.Default()
	}
	norm := k.NormalizeAll(candidateSkills)
	sort.Strings(norm)

	h := sha256.New()
	h.Write([]byte(strings.Join(norm, "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(years, 'f', -1, 64)))
	for _, e := range extra {
		h.Write([]byte{0})
		h.Write([]byte(e))
	}
	return KeyPrefix + kind + ":" + version + ":" + hex.EncodeToString(h.Sum(nil))
}
