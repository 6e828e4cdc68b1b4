package cache

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
)

// ErrInvalidCapacity is returned when a cache is created with capacity <= 0.
var ErrInvalidCapacity = errors.New("cache: capacity must be positive")

// LRU is a bounded cache. It is not safe for concurrent use; callers sharing
// an instance across goroutines must serialize access.
type LRU[K comparable, V any] struct {
	entries  *lru.LRU[K, V]
	capacity int
	observer Observer
}

// Observer receives hit/miss notifications from Get.
type Observer interface {
	Hit()
	Miss()
}

// Option configures an LRU.
type Option func(o *options)

type options struct {
	observer Observer
}

// WithObserver registers an observer for lookups.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	entries, err := lru.NewLRU[K, V](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &LRU[K, V]{entries: entries, capacity: capacity, observer: o.observer}, nil
}

// Get returns the cached value and true, refreshing the key's recency. On a
// miss it returns the zero value and false.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Get(key)
	if c.observer != nil {
		if ok {
			c.observer.Hit()
		} else {
			c.observer.Miss()
		}
	}
	return value, ok
}

// Set stores value under key. An existing key is updated and becomes the most
// recently used without evicting anything; a new key evicts the least
// recently used entry when the cache is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.entries.Add(key, value)
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return c.entries.Len() }

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }
