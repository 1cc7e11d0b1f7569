package game

import "sync"

// playerLocks hands out one mutex per player ID. Entries are dropped once no
// caller holds or waits for them.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*playerLock
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{
		locks: make(map[string]*playerLock),
	}
}

// lock blocks until the player's mutex is held and returns the unlock func
func (l *playerLocks) lock(playerID string) func() {
	l.mu.Lock()
	pl, ok := l.locks[playerID]
	if !ok {
		pl = &playerLock{}
		l.locks[playerID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()

	return func() {
		pl.mu.Unlock()

		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, playerID)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries
func (l *playerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
