package combos

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Request names one enumeration.
type Request struct {
	Labels  []string
	Primary []string // nil for an unconstrained enumeration
	MaxSize int
}

func (r Request) cacheKey() string {
	var b strings.Builder
	b.WriteString(strings.Join(Normalize(r.Labels), ","))
	b.WriteString("|")
	if r.Primary != nil {
		b.WriteString("p:")
		b.WriteString(strings.Join(Normalize(r.Primary), ","))
	}
	b.WriteString("|")
	b.WriteString(strconv.Itoa(r.MaxSize))
	return b.String()
}

// Cache memoizes enumerations for the lifetime of a session. Entries are
// built at most once per distinct normalised request and never evicted.
// A Cache is safe for use by the background warmer and the caller at the
// same time.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Index
	group   singleflight.Group
	logger  *zap.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets the logger used to report build timings.
func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*Index),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the indexed enumeration for req, building it on first use.
// Concurrent first uses share a single build.
func (c *Cache) Index(req Request) *Index {
	k := req.cacheKey()

	c.mu.RLock()
	ix, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		return ix
	}

	v, _, _ := c.group.Do(k, func() (interface{}, error) {
		c.mu.RLock()
		ix, ok := c.entries[k]
		c.mu.RUnlock()
		if ok {
			return ix, nil
		}

		start := time.Now()
		ix = NewIndex(req.Labels, req.Primary, req.MaxSize)
		c.logger.Debug("enumerated label combinations",
			zap.Int("labels", len(req.Labels)),
			zap.Int("max_size", req.MaxSize),
			zap.Int("subsets", ix.Len()),
			zap.Duration("took", time.Since(start)))

		c.mu.Lock()
		c.entries[k] = ix
		c.mu.Unlock()
		return ix, nil
	})
	return v.(*Index)
}

// Subsets is the memoized form of Enumerate.
func (c *Cache) Subsets(labels, primary []string, maxSize int) [][]string {
	return c.Index(Request{Labels: labels, Primary: primary, MaxSize: maxSize}).Subsets()
}

// Len returns the number of cached enumerations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Warm builds the requested enumerations on a background goroutine and
// returns a function that blocks until warming is done. Cancelling ctx
// stops warming between requests.
func (c *Cache) Warm(ctx context.Context, reqs ...Request) (wait func() error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, req := range reqs {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Index(req)
		}
		return nil
	})
	return g.Wait
}
