package store

import (
	"errors"
	"testing"
	"time"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreReadWrite(t *testing.T) {
	st := New(NewMemory())

	var got record
	if st.Read("s1", "rec", &got) {
		t.Error("read of absent record reported present")
	}

	st.Write("s1", "rec", record{Name: "agni", Count: 3})
	if !st.Read("s1", "rec", &got) {
		t.Fatal("read after write reported absent")
	}
	if got.Name != "agni" || got.Count != 3 {
		t.Errorf("got %+v, want {agni 3}", got)
	}

	// Other sessions see nothing.
	var other record
	if st.Read("s2", "rec", &other) {
		t.Error("record visible from another session")
	}
}

func TestInitializeIfAbsentFirstWriteWins(t *testing.T) {
	st := New(NewMemory())

	st.InitializeIfAbsent("s1", "rec", record{Name: "first"})
	st.InitializeIfAbsent("s1", "rec", record{Name: "second"})

	var got record
	st.Read("s1", "rec", &got)
	if got.Name != "first" {
		t.Errorf("Name = %q, want the first initialization to stick", got.Name)
	}

	// A real write still overwrites.
	st.Write("s1", "rec", record{Name: "third"})
	st.Read("s1", "rec", &got)
	if got.Name != "third" {
		t.Errorf("Name = %q, want third", got.Name)
	}
}

func TestCorruptRecordReadAsAbsent(t *testing.T) {
	backend := NewMemory()
	st := New(backend)

	backend.Put("s1", "rec", []byte("{not valid json"))

	got := record{Name: "untouched"}
	if st.Read("s1", "rec", &got) {
		t.Error("corrupt record reported present")
	}
	if got.Name != "untouched" {
		t.Error("dst modified on failed read")
	}
}

// failingBackend simulates a broken storage layer.
type failingBackend struct{}

func (failingBackend) Get(sessionID, key string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingBackend) Put(sessionID, key string, value []byte) error {
	return errors.New("backend down")
}
func (failingBackend) PutIfAbsent(sessionID, key string, value []byte) (bool, error) {
	return false, errors.New("backend down")
}
func (failingBackend) DeleteSession(sessionID string) error {
	return errors.New("backend down")
}

func TestDegradationOnBackendFailure(t *testing.T) {
	st := New(failingBackend{})

	// Writes are silent no-ops, reads report absent. No panics, no errors
	// surfaced to callers.
	st.Write("s1", "rec", record{Name: "lost"})
	st.InitializeIfAbsent("s1", "rec", record{Name: "lost"})

	var got record
	if st.Read("s1", "rec", &got) {
		t.Error("read reported present on failing backend")
	}
}

func TestMemoryDeleteSession(t *testing.T) {
	m := NewMemory()
	st := New(m)

	st.Write("s1", "a", record{Count: 1})
	st.Write("s1", "b", record{Count: 2})
	st.Write("s2", "a", record{Count: 3})

	if err := m.DeleteSession("s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	var got record
	if st.Read("s1", "a", &got) || st.Read("s1", "b", &got) {
		t.Error("records survived session deletion")
	}
	if !st.Read("s2", "a", &got) {
		t.Error("unrelated session was deleted")
	}
}

func TestMemorySweepExpiresIdleSessions(t *testing.T) {
	m := NewMemory()
	st := New(m)

	st.Write("stale", "rec", record{Count: 1})
	st.Write("fresh", "rec", record{Count: 2})

	// Age the stale session past the TTL, then sweep.
	m.mu.Lock()
	m.sessions["stale"].lastSeen = time.Now().Add(-DefaultSessionTTL - time.Minute)
	m.mu.Unlock()
	m.sweep(time.Now())

	var got record
	if st.Read("stale", "rec", &got) {
		t.Error("expired session survived the sweep")
	}
	if !st.Read("fresh", "rec", &got) {
		t.Error("fresh session was swept")
	}
}
