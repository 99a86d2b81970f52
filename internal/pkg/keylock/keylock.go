// Package keylock serialises work per string key. Membership mutations use
// it to make check-then-write sequences on a project atomic within the
// process.
package keylock

import "sync"

type KeyLock struct {
	locks sync.Map
}

func New() *KeyLock {
	return &KeyLock{}
}

func (k *KeyLock) Lock(key string) {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

func (k *KeyLock) Unlock(key string) {
	mu, ok := k.locks.Load(key)
	if !ok {
		panic("keylock: unlock of unheld key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}

// Do runs fn while holding the key's lock.
func (k *KeyLock) Do(key string, fn func() error) error {
	k.Lock(key)
	defer k.Unlock(key)
	return fn()
}
