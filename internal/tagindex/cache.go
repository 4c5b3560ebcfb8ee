package tagindex

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// tagCache maps normalized tag keys to tag ids. Tags are never deleted, so
// entries only age out to bound memory.
type tagCache struct {
	lru *expirable.LRU[string, string]
}

func newTagCache(size int, ttl time.Duration) *tagCache {
	return &tagCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *tagCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *tagCache) Set(key, tagID string) {
	c.lru.Add(key, tagID)
}

func (c *tagCache) Invalidate(key string) {
	c.lru.Remove(key)
}

func (c *tagCache) Len() int {
	return c.lru.Len()
}
