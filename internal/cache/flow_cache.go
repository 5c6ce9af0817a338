package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlowCache stores flow results keyed by flow name and input text
type FlowCache interface {
	Get(ctx context.Context, flow, text string) (string, bool, error)
	Set(ctx context.Context, flow, text, result string) error
}

type flowCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlowCache creates a Redis-backed flow result cache
func NewFlowCache(client *redis.Client, ttl time.Duration) FlowCache {
	return &flowCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the cache key for a flow invocation
func Key(flow, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("flow:%s:%s", flow, hex.EncodeToString(sum[:]))
}

func (c *flowCache) Get(ctx context.Context, flow, text string) (string, bool, error) {
	data, err := c.client.Get(ctx, Key(flow, text)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (c *flowCache) Set(ctx context.Context, flow, text, result string) error {
	return c.client.Set(ctx, Key(flow, text), result, c.ttl).Err()
}

type noopFlowCache struct{}

// NewNoopFlowCache returns a cache that never hits, used when Redis is not configured
func NewNoopFlowCache() FlowCache {
	return noopFlowCache{}
}

func (noopFlowCache) Get(ctx context.Context, flow, text string) (string, bool, error) {
	return "", false, nil
}

func (noopFlowCache) Set(ctx context.Context, flow, text, result string) error {
	return nil
}
