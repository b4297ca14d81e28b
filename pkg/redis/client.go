// Package redis holds the process-wide Redis client. The client is optional:
// rate limiting and the price cache degrade to in-memory fallbacks when it is
// absent, so callers must tolerate Client() returning nil.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries the connection settings. URL accepts both redis:// and
// rediss:// schemes; the latter enables TLS, which Upstash requires.
type Config struct {
	URL      string
	Password string
}

var (
	mu     sync.Mutex
	client *redis.Client
)

// Initialize connects and pings the server. Calling it again after a
// successful connect is a no-op.
func Initialize(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return nil
	}
	if cfg.URL == "" {
		return errors.New("redis: REDIS_URL not configured")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}

	client = c
	return nil
}

// Client returns the connected client, or nil when Redis is not configured.
func Client() *redis.Client {
	mu.Lock()
	defer mu.Unlock()
	return client
}

// Close releases the connection pool.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
