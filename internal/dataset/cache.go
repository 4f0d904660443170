package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheVersionKey = "dataset:version"
	cacheKeyPrefix  = "dataset:sales"
	// BumpChannel carries cache version bumps between processes.
	BumpChannel = "dataset.bump"
)

// Cache stores the decoded dataset in Redis under a versioned key.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

func (c *Cache) key(ctx context.Context) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", cacheKeyPrefix, ver), nil
}

// Fetch returns the cached dataset or populates it using next.
func (c *Cache) Fetch(ctx context.Context, next Loader) (*SalesDataset, error) {
	if next == nil {
		return nil, errors.New("dataset cache: loader required")
	}
	if c == nil || c.client == nil {
		return next.Load(ctx)
	}
	key, err := c.key(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var ds SalesDataset
		if err := json.Unmarshal(payload, &ds); err != nil {
			return nil, &ParseError{Source: "cache", Err: err}
		}
		return &ds, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	ds, err := next.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Store(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Store writes ds under the current version key.
func (c *Cache) Store(ctx context.Context, ds *SalesDataset) error {
	if c == nil || c.client == nil || ds == nil {
		return nil
	}
	key, err := c.key(ctx)
	if err != nil {
		return err
	}
	return c.storeAt(ctx, key, ds)
}

func (c *Cache) storeAt(ctx context.Context, key string, ds *SalesDataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Publish writes ds under the next version, then advances the version and
// announces it on BumpChannel. Subscribers never see a version whose
// document is missing.
func (c *Cache) Publish(ctx context.Context, ds *SalesDataset) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	if ds == nil {
		return 0, errors.New("dataset cache: dataset required")
	}
	cur, err := c.Version(ctx)
	if err != nil {
		return 0, err
	}
	next := cur + 1
	if err := c.storeAt(ctx, fmt.Sprintf("%s:%d", cacheKeyPrefix, next), ds); err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, cacheVersionKey, next, 0).Err(); err != nil {
		return 0, err
	}
	if err := c.client.Publish(ctx, BumpChannel, strconv.FormatInt(next, 10)).Err(); err != nil {
		return next, err
	}
	return next, nil
}

// CachedLoader serves loads through a Cache.
type CachedLoader struct {
	Cache *Cache
	Next  Loader
}

// Load implements Loader.
func (l CachedLoader) Load(ctx context.Context) (*SalesDataset, error) {
	return l.Cache.Fetch(ctx, l.Next)
}

// Subscribe calls fn with every version announced by Publish until ctx is done.
func (c *Cache) Subscribe(ctx context.Context, fn func(version int64)) error {
	if c == nil || c.client == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	sub := c.client.Subscribe(ctx, BumpChannel)
	defer func() { _ = sub.Close() }()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("dataset cache: subscribe: %w", err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ver, err := strconv.ParseInt(msg.Payload, 10, 64)
			if err != nil {
				continue
			}
			fn(ver)
		}
	}
}
