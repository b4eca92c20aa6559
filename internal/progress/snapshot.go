package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rigveda-learn/backend/internal/models"
	"github.com/rigveda-learn/backend/internal/store"
)

// ErrMalformedDocument reports an import payload that is not a JSON object.
var ErrMalformedDocument = errors.New("malformed progress document")

// Export assembles the downloadable snapshot of all five records. Sessions
// that never wrote anything export their defaults.
func (s *Service) Export(sessionID string) *models.Snapshot {
	s.Initialize(sessionID)
	return &models.Snapshot{
		Progress:     s.Progress(sessionID),
		Streak:       s.Streak(sessionID),
		Achievements: s.Achievements(sessionID),
		MicroActions: s.MicroActions(sessionID),
		XP:           s.XP(sessionID),
		ExportDate:   s.now().Format(time.RFC3339),
	}
}

// ExportFilename names the download for the current local date.
func (s *Service) ExportFilename() string {
	return fmt.Sprintf("rigveda-progress-%s.json", s.today())
}

// Import replaces each record present in the document and leaves absent ones
// untouched, returning the keys it applied. Unknown fields are ignored.
// Application is not atomic: records written before a store failure stay
// written.
func (s *Service) Import(sessionID string, data []byte) ([]string, error) {
	var doc models.Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformedDocument
	}

	applied := []string{}
	if doc.Progress != nil {
		s.store.Write(sessionID, store.KeyProgress, doc.Progress)
		applied = append(applied, store.KeyProgress)
	}
	if doc.Streak != nil {
		s.store.Write(sessionID, store.KeyStreak, doc.Streak)
		applied = append(applied, store.KeyStreak)
	}
	if doc.Achievements != nil {
		s.store.Write(sessionID, store.KeyAchievements, doc.Achievements)
		applied = append(applied, store.KeyAchievements)
	}
	if doc.MicroActions != nil {
		s.store.Write(sessionID, store.KeyMicroActions, doc.MicroActions)
		applied = append(applied, store.KeyMicroActions)
	}
	if doc.XP != nil {
		s.store.Write(sessionID, store.KeyXP, doc.XP)
		applied = append(applied, store.KeyXP)
	}
	return applied, nil
}
