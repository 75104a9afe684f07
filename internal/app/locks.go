package app

import (
	"hash/fnv"
	"sync"
)

// keyedMutexShards must be a power of two so the hash can be masked.
const keyedMutexShards = 64

// keyedMutex serializes mutations per resource id. Two concurrent calls
// against the same id run one after the other; calls against different ids
// proceed independently (modulo shard collisions, which only cost latency,
// never correctness). The store's version check remains the final guard for
// writers outside this process.
type keyedMutex struct {
	shards [keyedMutexShards]sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{}
}

// Lock acquires the shard for key and returns the unlock function.
func (k *keyedMutex) Lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	shard := &k.shards[h.Sum32()&(keyedMutexShards-1)]
	shard.Lock()
	return shard.Unlock
}
