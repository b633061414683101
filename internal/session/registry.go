package session

import (
	"sort"
	"strings"
	"sync"
)

// Registry is the process-wide map from character id to live session. It is
// the only structure mutated by many goroutines; everything else is owned by
// a single actor.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Register installs the session under the given character id. If another
// session already holds the id, the newcomer wins and the prior session is
// returned so the caller can force-disconnect it. At most one live entry per
// id ever exists.
func (r *Registry) Register(id string, s *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior := r.sessions[id]
	if prior == s {
		return nil
	}
	r.sessions[id] = s
	return prior
}

// Unregister removes the entry only if it still belongs to the given session,
// so a stale unregister from an evicted session cannot remove its successor.
func (r *Registry) Unregister(id string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[id] != s {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Lookup returns the live session for a character id.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok
}

// FindByName returns the live session whose character has the given name,
// case-insensitively.
func (r *Registry) FindByName(name string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if strings.EqualFold(s.Name(), name) {
			return s, true
		}
	}
	return nil, false
}

// ConnectedPlayers returns the sorted display names of everyone online.
func (r *Registry) ConnectedPlayers() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.sessions))
	for _, s := range r.sessions {
		names = append(names, s.Name())
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Each calls fn for every live session. The session set is snapshotted first
// so fn may post messages without holding the registry lock.
func (r *Registry) Each(fn func(*Session)) {
	r.mu.RLock()
	snapshot := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	r.mu.RUnlock()

	for _, s := range snapshot {
		fn(s)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Drain posts a Disconnect to every live session and waits for each to
// terminate. Used at shutdown.
func (r *Registry) Drain(reason string) {
	var drained []*Session
	r.Each(func(s *Session) {
		s.Post(Disconnect{Reason: reason})
		drained = append(drained, s)
	})
	for _, s := range drained {
		<-s.Done()
	}
}
