// Package cache provides a Redis-backed read-through cache for query
// results.
//
// Entries are stored as JSON. Keys embed a generation counter so a whole
// namespace can be invalidated with a single INCR instead of scanning
// and deleting keys.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON values under a namespace.
type Cache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// New creates a cache for namespace (e.g. "properties:search").
func New(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	return &Cache{client: client, namespace: namespace, ttl: ttl}
}

// Get decodes the value stored under key into dest. found is false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

// Set stores value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate makes every key previously returned by Key unreachable.
// Old entries expire on their own TTL.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}

// Key builds the cache key for a query described by params. Params are
// sorted so the same filters in a different order share an entry.
func (c *Cache) Key(ctx context.Context, params map[string]string) (string, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return fmt.Sprintf("%s:%d:%s", c.namespace, generation, hex.EncodeToString(hash[:])), nil
}

func (c *Cache) generationKey() string {
	return c.namespace + ":generation"
}
