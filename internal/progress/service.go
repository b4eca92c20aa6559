package progress

import (
	"fmt"
	"time"

	"github.com/rigveda-learn/backend/internal/catalog"
	"github.com/rigveda-learn/backend/internal/models"
	"github.com/rigveda-learn/backend/internal/store"
)

const dateLayout = "2006-01-02"

// Service implements the progress ledger, streak engine, XP engine, and
// achievement/quest tracker over the session store. All operations are
// synchronous read-modify-write cycles; idempotent where repeats are
// business no-ops.
type Service struct {
	store *store.Store

	// now is the clock seam for day-boundary logic; tests inject fixed
	// dates. Calendar comparisons use the local time zone.
	now func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// today returns the current local calendar date.
func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

func localDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// Initialize creates any missing records with their defaults. First-write-
// wins: records that already exist are untouched. Safe to call on every
// request.
func (s *Service) Initialize(sessionID string) {
	s.store.InitializeIfAbsent(sessionID, store.KeyProgress, models.DefaultProgress())
	s.store.InitializeIfAbsent(sessionID, store.KeyStreak, models.DefaultStreak(s.now()))
	s.store.InitializeIfAbsent(sessionID, store.KeyXP, models.DefaultXP())
	s.store.InitializeIfAbsent(sessionID, store.KeyAchievements, []string{})
	s.store.InitializeIfAbsent(sessionID, store.KeyMicroActions, models.MicroActionLog{})
}

// ── Record Reads ────────────────────────────────────────────

// Progress returns the session's progress record, falling back to defaults
// when the store reports it absent.
func (s *Service) Progress(sessionID string) *models.ProgressRecord {
	rec := models.DefaultProgress()
	s.store.Read(sessionID, store.KeyProgress, rec)
	return rec
}

func (s *Service) Streak(sessionID string) *models.StreakRecord {
	rec := models.DefaultStreak(s.now())
	s.store.Read(sessionID, store.KeyStreak, rec)
	return rec
}

func (s *Service) XP(sessionID string) *models.XPRecord {
	rec := models.DefaultXP()
	s.store.Read(sessionID, store.KeyXP, rec)
	return rec
}

func (s *Service) Achievements(sessionID string) []string {
	unlocked := []string{}
	s.store.Read(sessionID, store.KeyAchievements, &unlocked)
	return unlocked
}

func (s *Service) MicroActions(sessionID string) models.MicroActionLog {
	actions := models.MicroActionLog{}
	s.store.Read(sessionID, store.KeyMicroActions, &actions)
	return actions
}

// ── Progress Ledger ─────────────────────────────────────────

// LessonKey builds the composite "<hymnID>-<lessonID>" completion key.
func LessonKey(hymnID, lessonID int) string {
	return fmt.Sprintf("%d-%d", hymnID, lessonID)
}

// CompleteLesson records a lesson completion. The first completion adds the
// lesson key, counts the lesson's resolvable verses, and awards the lesson
// XP; when it finishes the hymn it also records the hymn and awards the
// completion bonus. Repeats change nothing and award nothing.
func (s *Service) CompleteLesson(sessionID string, hymn *catalog.Hymn, lesson *catalog.Lesson) *models.LessonCompleteResponse {
	s.Initialize(sessionID)

	key := LessonKey(hymn.ID, lesson.ID)
	resp := &models.LessonCompleteResponse{LessonKey: key, MicroAction: hymn.MicroAction}

	prog := s.Progress(sessionID)
	if prog.HasLessonKey(key) {
		resp.AlreadyCompleted = true
		resp.XP = *s.XP(sessionID)
		return resp
	}

	verses := len(hymn.ResolveVerses(lesson))
	prog.CompletedLessonKeys = append(prog.CompletedLessonKeys, key)
	prog.VersesLearnedTotal += verses
	s.store.Write(sessionID, store.KeyProgress, prog)

	resp.VersesLearned = verses
	resp.XPAwarded = LessonXP
	s.AwardXP(sessionID, LessonXP)

	// Re-read: AwardXP rewrote the progress record.
	prog = s.Progress(sessionID)
	if allLessonsCompleted(hymn, prog) && !prog.HasHymn(hymn.ID) {
		prog.CompletedHymnIDs = append(prog.CompletedHymnIDs, hymn.ID)
		s.store.Write(sessionID, store.KeyProgress, prog)
		s.AwardXP(sessionID, HymnCompletionXP)
		resp.HymnCompleted = true
		resp.XPAwarded += HymnCompletionXP
	}

	resp.XP = *s.XP(sessionID)
	return resp
}

func allLessonsCompleted(hymn *catalog.Hymn, prog *models.ProgressRecord) bool {
	for _, l := range hymn.Lessons {
		if !prog.HasLessonKey(LessonKey(hymn.ID, l.ID)) {
			return false
		}
	}
	return true
}

// CompletePractice awards XP for a recall practice round. Accuracy counters
// on the progress record are reserved fields and stay untouched.
func (s *Service) CompletePractice(sessionID string, correct int) (*models.XPRecord, error) {
	return s.AwardXP(sessionID, correct*PracticeVerseXP)
}

// ── Streak Engine ───────────────────────────────────────────

// TouchStreak registers a visit on the current local calendar date. Visiting
// again on the same date changes nothing; a visit on the day after the last
// one extends the streak; any longer gap (or a first real visit on a later
// day) starts over at 1. The longest streak never decreases. Streak freezes
// are carried as a counter only — nothing consumes them yet.
func (s *Service) TouchStreak(sessionID string) *models.StreakRecord {
	s.Initialize(sessionID)

	rec := s.Streak(sessionID)
	now := s.now()
	today := localDate(now)
	last := localDate(rec.LastVisitDate)

	if today == last {
		return rec
	}

	yesterday := localDate(now.AddDate(0, 0, -1))
	if last == yesterday {
		rec.CurrentStreak++
	} else {
		rec.CurrentStreak = 1
	}
	if rec.CurrentStreak > rec.LongestStreak {
		rec.LongestStreak = rec.CurrentStreak
	}
	rec.LastVisitDate = now
	s.store.Write(sessionID, store.KeyStreak, rec)
	return rec
}

// ── Achievement / Quest / Habit Tracker ─────────────────────

// UnlockAchievement adds the achievement to the unlocked set and reports
// whether anything changed. Unlocking twice is a no-op, not an error.
func (s *Service) UnlockAchievement(sessionID, achievementID string) bool {
	s.Initialize(sessionID)

	unlocked := s.Achievements(sessionID)
	for _, id := range unlocked {
		if id == achievementID {
			return false
		}
	}
	unlocked = append(unlocked, achievementID)
	s.store.Write(sessionID, store.KeyAchievements, unlocked)
	return true
}

// CompleteMicroAction marks the action done for the current local date and
// reports whether anything changed. Each date has its own independent set.
func (s *Service) CompleteMicroAction(sessionID, actionID string) bool {
	s.Initialize(sessionID)

	actions := s.MicroActions(sessionID)
	today := s.today()
	for _, id := range actions[today] {
		if id == actionID {
			return false
		}
	}
	actions[today] = append(actions[today], actionID)
	s.store.Write(sessionID, store.KeyMicroActions, actions)
	return true
}

// CompleteQuest marks an environmental quest done for this session and
// reports whether anything changed. Quest completions are session-local and
// excluded from the export document.
func (s *Service) CompleteQuest(sessionID, questID string) bool {
	completed := []string{}
	s.store.Read(sessionID, store.KeyQuests, &completed)
	for _, id := range completed {
		if id == questID {
			return false
		}
	}
	completed = append(completed, questID)
	s.store.Write(sessionID, store.KeyQuests, completed)
	return true
}

// CompletedQuests returns the session's completed environmental quest ids.
func (s *Service) CompletedQuests(sessionID string) []string {
	completed := []string{}
	s.store.Read(sessionID, store.KeyQuests, &completed)
	return completed
}

// AnswerEthicalChallenge evaluates a chosen option against the challenge's
// rita predicate. Aligned choices earn the challenge's XP; misaligned ones
// earn nothing. Nothing about the answer is persisted.
func (s *Service) AnswerEthicalChallenge(sessionID string, challenge *catalog.EthicalChallenge, option *catalog.EthicalOption) (*models.EthicalAnswerResponse, error) {
	resp := &models.EthicalAnswerResponse{RitaAligned: option.Rita}
	if option.Rita {
		xp, err := s.AwardXP(sessionID, challenge.XP)
		if err != nil {
			return nil, err
		}
		resp.XPAwarded = challenge.XP
		resp.XP = *xp
		return resp, nil
	}
	resp.XP = *s.XP(sessionID)
	return resp, nil
}

// ── Tutorial Flag ───────────────────────────────────────────

func (s *Service) TutorialCompleted(sessionID string) bool {
	done := false
	s.store.Read(sessionID, store.KeyTutorial, &done)
	return done
}

func (s *Service) MarkTutorialCompleted(sessionID string) {
	s.store.Write(sessionID, store.KeyTutorial, true)
}
