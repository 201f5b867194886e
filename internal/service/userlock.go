package service

import "sync"

// userLocks serialises read-modify-write cycles on one user's profile.
// Every overlay mutation and every sync run takes the user's lock, so
// two concurrent writers can never lose each other's updates. Locks are
// created on first use and never released back; the registry grows with
// the number of distinct users, which is small.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (u *userLocks) get(userID string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	return l
}

// Lock acquires the given user's lock and returns the unlock function.
func (u *userLocks) Lock(userID string) func() {
	l := u.get(userID)
	l.Lock()
	return l.Unlock
}
