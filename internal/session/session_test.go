package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager()

	token, sessionID, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" || sessionID == "" {
		t.Fatal("Issue returned empty token or session id")
	}

	got, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != sessionID {
		t.Errorf("Parse returned %q, want %q", got, sessionID)
	}
}

func TestIssueUniqueSessionIDs(t *testing.T) {
	m := NewManager()

	_, first, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, second, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first == second {
		t.Error("two sessions got the same id")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager()

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := m.Parse(token); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", token)
		}
	}
}

func TestMiddleware(t *testing.T) {
	m := NewManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || id == "" {
			t.Error("session id missing from context")
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Middleware(next)

	// No Authorization header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d, want 401", rec.Code)
	}

	// Bad token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}

	// Valid token.
	token, _, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}

func TestBeginMintsToken(t *testing.T) {
	m := NewManager()

	rec := httptest.NewRecorder()
	m.Begin(rec, httptest.NewRequest("POST", "/session", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}
