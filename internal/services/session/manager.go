package session

import (
	"log"
	"sync"
	"time"
)

// Manager owns the live labeling sessions, keyed by session ID. Idle
// sessions are evicted after the configured TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl    time.Duration
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewManager creates a session manager. A non-positive TTL disables
// eviction.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	if ttl > 0 {
		m.wg.Add(1)
		go m.evictIdle()
	}
	return m
}

// Create starts a new labeling session for an audio file
func (m *Manager) Create(fileName, fileID, audioPath string, duration float64, defaultSpeakers int) *Session {
	s := New(fileName, fileID, audioPath, duration, defaultSpeakers)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("session %s created for %s (%.2fs)", s.ID, fileName, duration)
	return s
}

// Get returns a live session by ID
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes and discards a session
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the eviction loop
func (m *Manager) Close() {
	close(m.stopCh)
	m.wg.Wait()
}

func (m *Manager) evictIdle() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)

			m.mu.Lock()
			for id, s := range m.sessions {
				s.mu.Lock()
				idle := s.lastAccess.Before(cutoff)
				s.mu.Unlock()
				if idle {
					delete(m.sessions, id)
					log.Printf("session %s evicted after %s idle", id, m.ttl)
				}
			}
			m.mu.Unlock()
		}
	}
}
