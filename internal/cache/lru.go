// Package cache provides an in-process key-value cache for single-node deployments.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/ratonica/internal/db"
)

// LRU is a size-bounded cache whose entries expire after a fixed TTL.
// It satisfies the Get/SetWithTTL subset of db.KVStore.
type LRU struct {
	items *expirable.LRU[string, []byte]
}

// NewLRU creates a cache holding at most size entries, each living for ttl.
// A zero ttl disables expiry.
func NewLRU(size int, ttl time.Duration) *LRU {
	return &LRU{items: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns the cached value or db.ErrKeyNotFound.
func (l *LRU) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := l.items.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

// SetWithTTL stores a value. The per-call ttl is ignored; entries use the cache TTL.
func (l *LRU) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	l.items.Add(key, value)
	return nil
}

// Len returns the number of live entries.
func (l *LRU) Len() int { return l.items.Len() }
