package flow

import "sync"

// sessionLocker serializes flow handling per session key, so two
// concurrent deliveries for the same chat perform their read-modify-write
// one after the other. Entries are reference counted and evicted once the
// last holder releases, keeping the map bounded by in-flight sessions.
type sessionLocker struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocker) lock(sessionID string) {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()
	entry.mu.Lock()
}

func (l *sessionLocker) unlock(sessionID string) {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
	}
	l.mu.Unlock()
	if ok {
		entry.mu.Unlock()
	}
}
