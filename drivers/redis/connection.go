package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"cpp_dbc"
)

// Connection is the Redis cpp_dbc.KeyValueConnection.
type Connection struct {
	mu     sync.Mutex
	client *goredis.Client
	url    string
	closed bool
	pooled bool
}

func (c *Connection) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, cppdbc.WrapError(cppdbc.CodeSqlError, err, "get %q", key)
	}
	return v, true, nil
}

func (c *Connection) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		return cppdbc.WrapError(cppdbc.CodeSqlError, err, "set %q", key)
	}
	return nil
}

func (c *Connection) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, cppdbc.WrapError(cppdbc.CodeSqlError, err, "delete %q", key)
	}
	return n > 0, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ReturnToPool is a no-op: go-redis already multiplexes over its own
// internal connection pool per *Client (same rationale as the MongoDB
// driver's ReturnToPool).
func (c *Connection) ReturnToPool() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cppdbc.ErrConnectionClosed
	}
	return nil
}

func (c *Connection) IsPooled() bool { return c.pooled }
func (c *Connection) GetURL() string { return c.url }
