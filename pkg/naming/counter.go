package naming

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Counter hands out strictly increasing indices starting at 0.
type Counter interface {
	Next(ctx context.Context) (uint64, error)
}

// AtomicCounter is an in-process Counter. The zero value is ready to use.
type AtomicCounter struct {
	n atomic.Uint64
}

// Next never fails.
func (c *AtomicCounter) Next(context.Context) (uint64, error) {
	return c.n.Add(1) - 1, nil
}

// Incrementer is the subset of redis.Cmdable used by RedisCounter.
type Incrementer interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// DefaultCounterKey is the redis key holding the shared rename sequence.
const DefaultCounterKey = "imagebatch:rename:counter"

// RedisCounter shares one sequence between processes. INCR is atomic on the
// server, so concurrent callers on any replica never see the same value.
type RedisCounter struct {
	client Incrementer
	key    string
}

// NewRedisCounter uses DefaultCounterKey when key is empty.
func NewRedisCounter(client Incrementer, key string) *RedisCounter {
	if key == "" {
		key = DefaultCounterKey
	}
	return &RedisCounter{client: client, key: key}
}

func (c *RedisCounter) Next(ctx context.Context) (uint64, error) {
	v, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment rename counter: %w", err)
	}
	if v < 1 {
		return 0, fmt.Errorf("increment rename counter: unexpected value %d", v)
	}
	return uint64(v - 1), nil
}
