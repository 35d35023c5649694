package ledger

import "sync"

// keyLocks serializes read-modify-write cycles per ledger key so that two
// appends racing the same key inside this process cannot lose an update.
// Writers in other processes remain last-writer-wins.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
// The per-key locks are never released back; the key space is one entry
// per conversation.
func (k *keyLocks) Lock(key string) *sync.Mutex {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l
}
