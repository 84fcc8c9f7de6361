package dataset

import (
	"sync"

	"datasentry/domain/core"
)

// KeyedMutex hands out one mutex per dataset id and forgets it once no
// goroutine holds or waits for it. Analysis runs and deletes of the same
// dataset share one KeyedMutex.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[core.ID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[core.ID]*refMutex)}
}

// Lock blocks until id is free and returns the matching unlock
func (k *KeyedMutex) Lock(id core.ID) func() {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *KeyedMutex) Size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
