package core

import "sync"

// KeyedMutex serializes critical sections per key while letting sections
// under different keys run in parallel. Mutating operations on a lunch
// session wrap their load-mutate-persist sequence in the mutex keyed by the
// session id, which is the single-writer discipline the coordination rules
// depend on.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// matching unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Forget drops the mutex for a key that can no longer be locked for a
// reason outside the mutex itself, e.g. the session it guarded was deleted.
// Callers still holding the old mutex are unaffected.
func (k *KeyedMutex) Forget(key string) {
	k.mu.Lock()
	delete(k.locks, key)
	k.mu.Unlock()
}
