package maprender

import (
	"sync"

	"campusnav-backend/application/ports"
)

// LatestStore keeps the most recently rendered artifact in memory. Renders
// are fire-and-forget, so the map endpoint serves whatever finished last; a
// render that fails simply leaves the previous artifact in place.
type LatestStore struct {
	mu     sync.RWMutex
	latest *ports.Artifact
}

// NewLatestStore creates an empty store
func NewLatestStore() *LatestStore {
	return &LatestStore{}
}

// Put replaces the current artifact
func (s *LatestStore) Put(artifact *ports.Artifact) {
	if artifact == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = artifact
}

// Latest returns the current artifact, if any render has completed
func (s *LatestStore) Latest() (*ports.Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
