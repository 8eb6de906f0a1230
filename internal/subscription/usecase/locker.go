package usecase

import (
	"sync"

	"interest-registry/internal/subscription/domain"
)

// interestLocker hands out one mutex per interest, dropping it once unused
type interestLocker struct {
	mu    sync.Mutex
	locks map[domain.Interest]*interestLock
}

type interestLock struct {
	mu   sync.Mutex
	refs int
}

func newInterestLocker() *interestLocker {
	return &interestLocker{locks: make(map[domain.Interest]*interestLock)}
}

// Lock blocks until interest is free and returns its unlock func
func (l *interestLocker) Lock(interest domain.Interest) func() {
	l.mu.Lock()
	lock, ok := l.locks[interest]
	if !ok {
		lock = &interestLock{}
		l.locks[interest] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, interest)
		}
		l.mu.Unlock()
	}
}

func (l *interestLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
