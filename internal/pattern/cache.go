package pattern

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps built pattern lists per scope, e.g. per prefecture.
type Cache struct {
	lru *lru.Cache[string, []Pattern]
}

// NewCache creates a cache holding at most size scopes.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, []Pattern](size)
	if err != nil {
		return nil, fmt.Errorf("pattern: failed to create cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Get returns the patterns for key, building them from load on a miss.
// Failed loads are not cached.
func (c *Cache) Get(key string, load func() ([]Candidate, error)) ([]Pattern, error) {
	if p, ok := c.lru.Get(key); ok {
		return p, nil
	}
	cands, err := load()
	if err != nil {
		return nil, err
	}
	p := Build(cands)
	c.lru.Add(key, p)
	return p, nil
}

// Len reports the number of cached scopes.
func (c *Cache) Len() int {
	return c.lru.Len()
}
