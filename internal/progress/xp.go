package progress

import (
	"fmt"
	"math"

	"github.com/rigveda-learn/backend/internal/models"
	"github.com/rigveda-learn/backend/internal/store"
)

// XP awards for the built-in activities.
const (
	LessonXP         = 30
	HymnCompletionXP = 50
	PracticeVerseXP  = 5
)

// ThresholdForLevel returns the XP needed to advance past the given level:
// floor(100 · 1.5^(level-1)). Level 1→2 is 100, 2→3 is 150, 3→4 is 225.
func ThresholdForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// ApplyXP adds amount to the record, cascading level-ups until the counter
// sits below the threshold. The threshold is recomputed from the new level
// on every step, never compounded from the old threshold.
func ApplyXP(xp *models.XPRecord, amount int) {
	if xp.CurrentLevel < 1 {
		xp.CurrentLevel = 1
	}
	// A corrupt threshold (bad import) would keep the loop from
	// terminating; recompute it from the level first.
	if xp.XPToNextLevel <= 0 {
		xp.XPToNextLevel = ThresholdForLevel(xp.CurrentLevel)
	}
	xp.CurrentXP += amount
	for xp.CurrentXP >= xp.XPToNextLevel {
		xp.CurrentXP -= xp.XPToNextLevel
		xp.CurrentLevel++
		xp.XPToNextLevel = ThresholdForLevel(xp.CurrentLevel)
	}
}

// AwardXP applies an XP award to the session's XP record and mirrors the new
// level and the lifetime total into the progress record. The lifetime total
// is the sum of every awarded amount; unlike CurrentXP it never resets.
func (s *Service) AwardXP(sessionID string, amount int) (*models.XPRecord, error) {
	if amount < 0 {
		return nil, fmt.Errorf("xp award must not be negative, got %d", amount)
	}
	s.Initialize(sessionID)

	xp := s.XP(sessionID)
	ApplyXP(xp, amount)
	s.store.Write(sessionID, store.KeyXP, xp)

	prog := s.Progress(sessionID)
	prog.Level = xp.CurrentLevel
	prog.XPTotal += amount
	s.store.Write(sessionID, store.KeyProgress, prog)

	return xp, nil
}
