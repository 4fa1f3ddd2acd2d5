package cst

import (
	"hash/fnv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/layerflow-org/lff/diag"
)

const (
	defaultCacheCapacity = 100
	defaultCacheTTL      = 5 * time.Minute
)

// cacheEntry is what the parse cache stores per content hash. Metrics are
// not cached; a cache hit reports its own (near-zero) timing separately.
type cacheEntry struct {
	root        *Node
	diagnostics diag.Result
	tokenCount  int
}

// parseCache is a content-hash-keyed LRU of recent parses. newParseCache
// substitutes the defaults for a non-positive capacity or TTL, so it never
// returns nil; get and put still treat a nil *parseCache as an always-miss
// cache.
type parseCache struct {
	lru *expirable.LRU[uint32, cacheEntry]
}

func newParseCache(capacity int, ttl time.Duration) *parseCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &parseCache{lru: expirable.NewLRU[uint32, cacheEntry](capacity, nil, ttl)}
}

func (c *parseCache) get(key uint32) (cacheEntry, bool) {
	if c == nil || c.lru == nil {
		return cacheEntry{}, false
	}
	return c.lru.Get(key)
}

func (c *parseCache) put(key uint32, entry cacheEntry) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key, entry)
}

// contentHash computes the 32-bit FNV-1a hash of src used as the parse
// cache key.
func contentHash(src string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(src))
	return h.Sum32()
}
