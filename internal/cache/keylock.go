package cache

import (
	"hash/fnv"
	"sync"
)

// KeyLock provides per-cache-key mutual exclusion (spec.md §4.3's
// concurrency contract) via a fixed number of mutex shards, so
// concurrent callers working on different keys don't serialize behind
// a single global lock.
type KeyLock struct {
	shards []sync.Mutex
}

// NewKeyLock constructs a KeyLock with the given number of shards.
func NewKeyLock(shardCount int) *KeyLock {
	if shardCount <= 0 {
		shardCount = 32
	}
	return &KeyLock{shards: make([]sync.Mutex, shardCount)}
}

// Lock acquires the shard owning key.
func (k *KeyLock) Lock(key string) {
	k.shards[k.shardFor(key)].Lock()
}

// Unlock releases the shard owning key.
func (k *KeyLock) Unlock(key string) {
	k.shards[k.shardFor(key)].Unlock()
}

func (k *KeyLock) shardFor(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32()) % len(k.shards)
}
