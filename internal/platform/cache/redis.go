// Package cache connects to Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPingTimeout bounds the connectivity check when Options leaves it unset.
const DefaultPingTimeout = 5 * time.Second

// Options configures the client returned by New.
type Options struct {
	Addr        string
	DB          int
	PingTimeout time.Duration
}

// New returns a client for opts.Addr once a PING succeeds. The client is closed
// when the server cannot be reached.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	client := redis.NewClient(&redis.Options{Addr: opts.Addr, DB: opts.DB})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("platform/cache: ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
