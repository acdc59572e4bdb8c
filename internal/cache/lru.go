// Package cache provides a small generic LRU with optional TTL, used to
// memoize derived views between store versions.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[T any] struct {
	key     string
	value   T
	expires time.Time // zero means no expiry
}

// LRU is a fixed-capacity least-recently-used cache. A ttl of zero disables
// expiry. Safe for concurrent use.
type LRU[T any] struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	index map[string]*list.Element
	order *list.List // front = most recently used
}

func NewLRU[T any](capacity int, ttl time.Duration) *LRU[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[T]{
		cap:   capacity,
		ttl:   ttl,
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[T])
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		c.evict(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = time.Now().Add(c.ttl)
	}
	if el, ok := c.index[key]; ok {
		el.Value = &entry[T]{key: key, value: value, expires: expires}
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&entry[T]{key: key, value: value, expires: expires})
	if c.order.Len() > c.cap {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.evict(el)
	}
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[T]) evict(el *list.Element) {
	delete(c.index, el.Value.(*entry[T]).key)
	c.order.Remove(el)
}
