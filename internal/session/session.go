package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rigveda-learn/backend/internal/models"
)

// Sessions are anonymous: a token identifies a browser tab's state bundle,
// nothing more. There are no accounts and no credentials.

// TokenTTL matches the store's session TTL — a token outliving its records
// would just resolve to a freshly initialized bundle.
const TokenTTL = 24 * time.Hour

// Manager mints and verifies session tokens.
type Manager struct {
	secret []byte
}

func NewManager() *Manager {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "rigveda-learn-session-signing-key"
	}
	return &Manager{secret: []byte(secret)}
}

// Issue creates a new session id and returns it with its signed token.
func (m *Manager) Issue() (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(TokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	return token, sessionID, nil
}

// Parse verifies a token and extracts its session id.
func (m *Manager) Parse(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session token missing session_id")
	}
	return sessionID, nil
}

// Begin handles POST /session: it mints a fresh anonymous session token.
func (m *Manager) Begin(w http.ResponseWriter, r *http.Request) {
	token, _, err := m.Issue()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create session"})
		return
	}
	writeJSON(w, http.StatusCreated, models.SessionResponse{Token: token})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
