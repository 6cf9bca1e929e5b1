// Package cmap provides a concurrent map keyed by strings.
//
// The map is split into shards, each guarded by its own RWMutex, and keys
// are assigned to shards with murmur3. It backs read-mostly caches such as
// the per-asset key cache, where many goroutines look up the same entries
// and occasionally populate new ones.
//
// Usage:
//
//	m := cmap.New[trackkey.Key]()
//	key := m.GetOrCompute("3135556", trackkey.Derive)
//
// Get takes a shard read lock; GetOrCompute takes the write lock only to
// store a newly computed value.
package cmap
