// Package query is the caching layer hosts put in front of the selfserve
// client. It caches payloads by key with a stale time, coalesces concurrent
// fetches of one key and retries retryable failures with backoff. The
// request pipeline itself never does any of this.
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	cbackoff "github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/internal/backoff"
	"github.com/GenerateNU/selfserve/internal/json"
)

const (
	DefaultStaleTime  = 30 * time.Second
	DefaultCacheTime  = 5 * time.Minute
	DefaultMaxRetries = 3
)

// Client caches query results. It is safe for concurrent use.
type Client struct {
	store      Store
	group      singleflight.Group
	staleTime  time.Duration
	cacheTime  time.Duration
	maxRetries int
	strategy   backoff.Strategy
	params     backoff.Params
	metrics    *selfserve.MetricsCollector
	logger     hclog.Logger

	// invalidateMu orders Invalidate against cache writes of running fetches.
	invalidateMu sync.RWMutex
	epoch        uint64
	invalidated  map[string]uint64
}

// Option configures a Client.
type Option func(*Client)

// WithStore replaces the default MemoryStore.
func WithStore(store Store) Option {
	return func(c *Client) { c.store = store }
}

// WithStaleTime sets how long a cached result is served without refetching.
// Zero refetches on every call.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithCacheTime sets how long entries are kept in the store.
func WithCacheTime(d time.Duration) Option {
	return func(c *Client) { c.cacheTime = d }
}

// WithRetry sets the number of retries after the first failed attempt.
func WithRetry(maxRetries int) Option {
	return func(c *Client) { c.maxRetries = maxRetries }
}

// WithoutRetry disables retries.
func WithoutRetry() Option {
	return WithRetry(0)
}

// WithBackoff sets the delay strategy between retries.
func WithBackoff(strategy backoff.Strategy, params backoff.Params) Option {
	return func(c *Client) {
		c.strategy = strategy
		c.params = params
	}
}

// WithMetrics records cache, deduplication and retry counts on collector.
func WithMetrics(collector *selfserve.MetricsCollector) Option {
	return func(c *Client) { c.metrics = collector }
}

func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(options ...Option) *Client {
	c := &Client{
		store:      NewMemoryStore(),
		staleTime:  DefaultStaleTime,
		cacheTime:  DefaultCacheTime,
		maxRetries: DefaultMaxRetries,
		strategy:   backoff.ExponentialJitter{},
		params:     backoff.DefaultParams(),
		logger:     hclog.NewNullLogger(),

		invalidated: make(map[string]uint64),
	}
	for _, option := range options {
		option(c)
	}
	if c.cacheTime < c.staleTime {
		c.cacheTime = c.staleTime
	}
	return c
}

// Invalidate drops key and every key below it, so the next Fetch refetches.
func (c *Client) Invalidate(ctx context.Context, key Key) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}
	c.invalidateMu.Lock()
	defer c.invalidateMu.Unlock()

	// Fetches started before this point must not write their results back.
	c.epoch++
	c.invalidated[key.String()] = c.epoch

	c.group.Forget(key.String())
	if err := c.store.DeletePrefix(ctx, key.String()); err != nil {
		return fmt.Errorf("invalidating %s: %w", key, err)
	}
	c.logger.Debug("invalidated query", "key", key.String())
	return nil
}

// Fetch returns the cached result for key while fresh, and otherwise calls
// fn. Concurrent calls for one key share a single fn call. Retryable errors
// are retried with backoff; errors are never cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if !key.Valid() {
		return zero, fmt.Errorf("%w: %q", ErrInvalidKey, key.String())
	}
	k, name := key.String(), key.Name()

	if v, ok := lookup[T](ctx, c, k); ok {
		c.metrics.RecordCacheHit(name)
		return v, nil
	}
	c.metrics.RecordCacheMiss(name)

	res, err, shared := c.group.Do(k, func() (interface{}, error) {
		started := c.currentEpoch()
		v, err := retry(ctx, c, key, fn)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		c.storeResult(ctx, key, started, raw)
		return fetched{value: v, raw: raw}, nil
	})
	if shared {
		c.metrics.RecordDeduplicationHit(name)
	}
	if err != nil {
		return zero, err
	}

	f := res.(fetched)
	if v, ok := f.value.(T); ok {
		return v, nil
	}
	var v T
	if err := json.Unmarshal(f.raw, &v); err != nil {
		return zero, fmt.Errorf("decoding %s: %w", k, err)
	}
	return v, nil
}

// Mutate runs fn once and, when it succeeds, invalidates each key in
// invalidate. Mutations are never retried or cached.
func Mutate[T any](ctx context.Context, c *Client, fn func(context.Context) (T, error), invalidate ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, key := range invalidate {
		if err := c.Invalidate(ctx, key); err != nil {
			c.logger.Warn("invalidation after mutation failed", "key", key.String(), "error", err)
		}
	}
	return v, nil
}

func (c *Client) currentEpoch() uint64 {
	c.invalidateMu.RLock()
	defer c.invalidateMu.RUnlock()
	return c.epoch
}

// storeResult caches raw for key unless key or one of its prefixes was
// invalidated after the fetch started.
func (c *Client) storeResult(ctx context.Context, key Key, started uint64, raw []byte) {
	c.invalidateMu.RLock()
	defer c.invalidateMu.RUnlock()

	for i := 1; i <= len(key); i++ {
		if c.invalidated[key[:i].String()] > started {
			c.logger.Debug("dropping result invalidated in flight", "key", key.String())
			return
		}
	}

	entry := &Entry{Value: raw, FetchedAt: time.Now()}
	if err := c.store.Set(ctx, key.String(), entry, c.cacheTime); err != nil {
		c.logger.Warn("caching query result failed", "key", key.String(), "error", err)
	}
}

type fetched struct {
	value any
	raw   []byte
}

func lookup[T any](ctx context.Context, c *Client, k string) (T, bool) {
	var v T
	if c.staleTime <= 0 {
		return v, false
	}
	entry, ok, err := c.store.Get(ctx, k)
	if err != nil {
		c.logger.Warn("reading query cache failed", "key", k, "error", err)
		return v, false
	}
	if !ok || time.Since(entry.FetchedAt) >= c.staleTime {
		return v, false
	}
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		c.logger.Warn("decoding cached query failed", "key", k, "error", err)
		return v, false
	}
	return v, true
}

func retry[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	policy := backoff.NewPolicy(c.strategy, c.params, c.maxRetries)

	var out T
	operation := func() error {
		v, err := fn(ctx)
		if err == nil {
			out = v
			return nil
		}
		if !selfserve.IsRetryable(err) {
			return cbackoff.Permanent(err)
		}
		if apiErr, ok := selfserve.AsAPIError(err); ok && apiErr.Header != nil {
			policy.Hint(backoff.RetryAfter(apiErr.Header.Get("Retry-After")))
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		c.metrics.RecordRetry(key.Name(), policy.Attempt())
		c.logger.Debug("retrying query", "key", key.String(), "attempt", policy.Attempt(), "delay", delay, "error", err)
	}

	err := cbackoff.RetryNotify(operation, cbackoff.WithContext(policy, ctx), notify)
	return out, err
}
