package resolver

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// Cache is the pluggable key-value store a CachingExecutor sits in front
// of. Get returning (nil, nil) means a miss. Any non-nil error from either
// method is treated as fail-open: the caching layer falls through to the
// network rather than propagating a cache failure (§4.8).
type Cache interface {
	Get(ctx context.Context, key string) (*dnsmsg.Message, error)
	Set(ctx context.Context, key string, msg *dnsmsg.Message, ttlSeconds float64) error
}

// defaultCacheTTL is used when a cached response carries no answer or
// authority records to derive a minimum TTL from (§4.8).
const defaultCacheTTL = 60.0

// CachingExecutor wraps an inner executor with a Cache. On a hit it never
// touches the inner executor; on a miss it queries the inner executor and,
// on success, writes back the minimum TTL across answer and authority
// records (skipping the write entirely for truncated responses).
type CachingExecutor struct {
	Inner Executor
	Cache Cache
}

func NewCachingExecutor(inner Executor, cache Cache) *CachingExecutor {
	return &CachingExecutor{Inner: inner, Cache: cache}
}

func (c *CachingExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	key := q.Key()

	if msg, err := c.Cache.Get(ctx, key); err == nil && msg != nil {
		return msg, nil
	}
	// a cache error or a miss both fall through to the network.

	msg, err := c.Inner.Exec(ctx, q)
	if err != nil {
		return nil, err
	}

	if !msg.Bits.IsTrunc() {
		ttl := minTTL(msg)
		_ = c.Cache.Set(ctx, key, msg, ttl) // Set failures must not fail the query.
	}

	return msg, nil
}

func minTTL(msg *dnsmsg.Message) float64 {
	var min float64 = -1
	for _, sections := range [][]*dnsmsg.Resource{msg.Answer, msg.Authority} {
		for _, r := range sections {
			t := float64(r.TTL)
			if min < 0 || t < min {
				min = t
			}
		}
	}
	if min < 0 {
		return defaultCacheTTL
	}
	return min
}

// memCache is the zero-config default Cache: a mutex-guarded map plus a
// min-heap of expirations, swept lazily on Get/Set rather than by a
// background goroutine.
type memCache struct {
	mu      sync.Mutex
	entries map[string]*memCacheEntry
	order   memCacheHeap
}

type memCacheEntry struct {
	key     string
	msg     *dnsmsg.Message
	expires time.Time
	index   int
}

type memCacheHeap []*memCacheEntry

func (h memCacheHeap) Len() int            { return len(h) }
func (h memCacheHeap) Less(i, j int) bool  { return h[i].expires.Before(h[j].expires) }
func (h memCacheHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *memCacheHeap) Push(x any) {
	e := x.(*memCacheEntry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *memCacheHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// NewMemCache builds the in-process default Cache implementation.
func NewMemCache() Cache {
	return &memCache{entries: make(map[string]*memCacheEntry)}
}

func (c *memCache) Get(ctx context.Context, key string) (*dnsmsg.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return e.msg, nil
}

func (c *memCache) Set(ctx context.Context, key string, msg *dnsmsg.Message, ttlSeconds float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	if old, ok := c.entries[key]; ok {
		heap.Remove(&c.order, old.index)
	}

	e := &memCacheEntry{key: key, msg: msg, expires: time.Now().Add(time.Duration(ttlSeconds * float64(time.Second)))}
	c.entries[key] = e
	heap.Push(&c.order, e)
	return nil
}

func (c *memCache) evictExpiredLocked() {
	now := time.Now()
	for c.order.Len() > 0 && !c.order[0].expires.After(now) {
		e := heap.Pop(&c.order).(*memCacheEntry)
		delete(c.entries, e.key)
	}
}
