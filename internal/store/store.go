package store

import (
	"encoding/json"
	"log"
)

// Record keys. One JSON document per key per session.
const (
	KeyProgress     = "progress"
	KeyStreak       = "streak"
	KeyXP           = "xp"
	KeyAchievements = "achievements"
	KeyMicroActions = "microActions"
	KeyQuests       = "quests"
	KeyTutorial     = "tutorial"
)

// Backend is the raw session-scoped key-value layer. Implementations hold
// one opaque value per (session, key) pair and expire whole sessions.
type Backend interface {
	// Get returns the stored value and whether it exists.
	Get(sessionID, key string) ([]byte, bool, error)
	// Put overwrites the value, last-write-wins.
	Put(sessionID, key string, value []byte) error
	// PutIfAbsent writes only when no value exists yet and reports whether
	// it wrote.
	PutIfAbsent(sessionID, key string, value []byte) (bool, error)
	// DeleteSession drops every record belonging to the session.
	DeleteSession(sessionID string) error
}

// Store adds the JSON codec and the degradation contract on top of a
// Backend: when the backend fails, reads report absent and writes become
// no-ops. Callers must tolerate any read coming back absent and re-run
// InitializeIfAbsent.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Read unmarshals the record under key into dst and reports whether a
// record existed. dst is left untouched when the record is absent.
func (s *Store) Read(sessionID, key string, dst interface{}) bool {
	raw, ok, err := s.backend.Get(sessionID, key)
	if err != nil {
		log.Printf("[store] read %s/%s: %v", sessionID, key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt record is indistinguishable from an absent one for
		// callers; they re-initialize.
		log.Printf("[store] decode %s/%s: %v", sessionID, key, err)
		return false
	}
	return true
}

// Write marshals v and overwrites the record under key.
func (s *Store) Write(sessionID, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[store] encode %s/%s: %v", sessionID, key, err)
		return
	}
	if err := s.backend.Put(sessionID, key, raw); err != nil {
		log.Printf("[store] write %s/%s: %v", sessionID, key, err)
	}
}

// InitializeIfAbsent writes def only when no record exists under key.
// First-write-wins; calling it repeatedly is free.
func (s *Store) InitializeIfAbsent(sessionID, key string, def interface{}) {
	raw, err := json.Marshal(def)
	if err != nil {
		log.Printf("[store] encode default %s/%s: %v", sessionID, key, err)
		return
	}
	if _, err := s.backend.PutIfAbsent(sessionID, key, raw); err != nil {
		log.Printf("[store] initialize %s/%s: %v", sessionID, key, err)
	}
}
