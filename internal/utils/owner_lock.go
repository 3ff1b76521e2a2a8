package utils

import "sync"

// OwnerLock serializes validate-then-persist sequences per owner. Concurrent
// writers for the same user would otherwise both pass the conflict check and
// both commit overlapping entries.
type OwnerLock struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewOwnerLock() *OwnerLock {
	return &OwnerLock{locks: map[int]*sync.Mutex{}}
}

// Lock acquires the mutex for the given user id and returns the unlock func.
func (l *OwnerLock) Lock(userId int) func() {
	l.mu.Lock()
	m, ok := l.locks[userId]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userId] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
