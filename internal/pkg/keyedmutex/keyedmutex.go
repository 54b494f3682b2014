// Package keyedmutex provides per-key mutual exclusion for serializing
// read-modify-write cycles on individual entities. Check-in and release on the
// same table, and status advances on the same order, must not interleave; two
// different entities must not contend with each other.
//
// Locks are refcounted and removed from the table once the last holder
// releases them, so the map does not grow with the number of entities ever
// touched. No caller ever holds two keys at once, so the package cannot
// introduce deadlock.
package keyedmutex

import "sync"

// KeyedMutex serializes critical sections per string key.
// The zero value is not usable; create instances with New.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is available.
// It returns the unlock function; callers typically defer it immediately.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		km.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
