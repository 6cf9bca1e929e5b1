// Package cmap provides a concurrent-safe sharded map.
package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// ShardCount is the number of shards; a power of two so a mask selects one.
const ShardCount = 16

// Map is a concurrent-safe sharded map with string keys.
type Map[V any] struct {
	shards [ShardCount]*shard[V]
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// New creates an empty map.
func New[V any]() *Map[V] {
	m := &Map[V]{}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

// getShard returns the shard owning key.
func (m *Map[V]) getShard(key string) *shard[V] {
	return m.shards[murmur3.Sum64([]byte(key))&(ShardCount-1)]
}

// Get retrieves a value by key.
func (m *Map[V]) Get(key string) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// GetOrCompute returns the value stored for key, computing and storing it
// with fn when absent. fn runs without the shard lock held, so two callers
// racing on the same missing key may both compute; the last store wins.
// fn must therefore be a pure function of key.
func (m *Map[V]) GetOrCompute(key string, fn func(key string) V) V {
	if val, ok := m.Get(key); ok {
		return val
	}

	val := fn(key)
	shard := m.getShard(key)
	shard.mu.Lock()
	shard.items[key] = val
	shard.mu.Unlock()
	return val
}

// Count returns the total number of items.
func (m *Map[V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}
