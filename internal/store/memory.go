package store

import (
	"context"
	"log"
	"sync"
	"time"
)

// Memory is the default Backend: a mutex-guarded map of sessions, each a map
// of record keys to raw JSON. A session's records live until the session has
// been idle for the TTL, mirroring the tab-scoped lifetime of browser session
// storage.
type Memory struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*memSession
}

type memSession struct {
	records  map[string][]byte
	lastSeen time.Time
}

const DefaultSessionTTL = 24 * time.Hour

func NewMemory() *Memory {
	return &Memory{
		ttl:      DefaultSessionTTL,
		sessions: make(map[string]*memSession),
	}
}

func (m *Memory) session(sessionID string) *memSession {
	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &memSession{records: make(map[string][]byte)}
		m.sessions[sessionID] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

func (m *Memory) Get(sessionID, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.session(sessionID).records[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (m *Memory) Put(sessionID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.session(sessionID).records[key] = cp
	return nil
}

func (m *Memory) PutIfAbsent(sessionID, key string, value []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(sessionID)
	if _, exists := sess.records[key]; exists {
		return false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	sess.records[key] = cp
	return true, nil
}

func (m *Memory) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// StartSweeper drops idle sessions once an hour until ctx is canceled.
func (m *Memory) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("[store] session sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Println("[store] session sweeper shutting down")
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if now.Sub(sess.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
