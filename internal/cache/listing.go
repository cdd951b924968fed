package cache

import (
	"strconv"
	"time"
)

// ListingCache holds rendered feed responses for a fixed window.
// Writes do not invalidate it: a new post stays invisible in the
// cached listing until the TTL elapses or Clear is called.
type ListingCache struct {
	cache Cache
	ttl   time.Duration
}

// NewListingCache creates a listing cache over the given backend
func NewListingCache(backend Cache, ttl time.Duration) *ListingCache {
	return &ListingCache{cache: backend, ttl: ttl}
}

// Key builds the cache key for a route and page number
func (l *ListingCache) Key(route string, page int) string {
	return HashKey("listing", route, strconv.Itoa(page))
}

// Get returns the cached response body for a route page, if fresh
func (l *ListingCache) Get(route string, page int) ([]byte, bool) {
	if l == nil || l.cache == nil {
		return nil, false
	}
	val, err := l.cache.Get(l.Key(route, page))
	if err != nil {
		return nil, false
	}
	return []byte(val), true
}

// Put stores a rendered response body for a route page
func (l *ListingCache) Put(route string, page int, body []byte) {
	if l == nil || l.cache == nil {
		return
	}
	// Store failures only cost a recompute on the next request.
	_ = l.cache.Set(l.Key(route, page), string(body), l.ttl)
}

// Clear drops every cached listing
func (l *ListingCache) Clear() error {
	if l == nil || l.cache == nil {
		return nil
	}
	return l.cache.Clear()
}
