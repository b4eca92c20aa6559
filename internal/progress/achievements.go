package progress

import (
	"github.com/rigveda-learn/backend/internal/catalog"
	"github.com/rigveda-learn/backend/internal/models"
)

// AchievementProgress computes the percent progress (0-100) toward an
// achievement's unlock criterion from the session's records. Achievements
// without a measurable criterion report 0 until unlocked.
func AchievementProgress(a *catalog.Achievement, prog *models.ProgressRecord, streak *models.StreakRecord) float64 {
	var pct float64
	switch a.ID {
	case "first_hymn":
		if len(prog.CompletedHymnIDs) > 0 {
			pct = 100
		}
	case "sanskrit_scholar":
		pct = float64(prog.VersesLearnedTotal) / 50 * 100
	case "weekly_warrior":
		pct = float64(streak.CurrentStreak) / 7 * 100
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// AchievementStatuses builds the full achievement list for a session,
// pairing each catalog achievement with its unlocked state and progress.
func (s *Service) AchievementStatuses(sessionID string) []models.AchievementStatus {
	prog := s.Progress(sessionID)
	streak := s.Streak(sessionID)
	unlocked := s.Achievements(sessionID)

	unlockedSet := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		unlockedSet[id] = true
	}

	all := catalog.Achievements()
	statuses := make([]models.AchievementStatus, 0, len(all))
	for _, a := range all {
		st := models.AchievementStatus{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			XP:          a.XP,
			Unlocked:    unlockedSet[a.ID],
		}
		if st.Unlocked {
			st.Progress = 100
		} else {
			st.Progress = AchievementProgress(&a, prog, streak)
		}
		statuses = append(statuses, st)
	}
	return statuses
}
