package models

import "time"

// ── Persisted Records ─────────────────────────────────────
//
// One JSON document per store key. Field names are the wire format shared
// with the web frontend and with exported progress files — do not rename.

// ProgressRecord is the cumulative learning ledger for one session.
type ProgressRecord struct {
	VersesLearnedTotal  int      `json:"versesLearnedTotal"`
	CompletedHymnIDs    []int    `json:"completedHymnIds"`
	CompletedLessonKeys []string `json:"completedLessonKeys"`
	Level               int      `json:"level"`
	XPTotal             int      `json:"xpTotal"`
	Accuracy            float64  `json:"accuracy"`
	QuestionsAnswered   int      `json:"questionsAnswered"`
	QuestionsCorrect    int      `json:"questionsCorrect"`
}

// HasLessonKey reports whether the composite "<hymnID>-<lessonID>" key is
// already recorded.
func (p *ProgressRecord) HasLessonKey(key string) bool {
	for _, k := range p.CompletedLessonKeys {
		if k == key {
			return true
		}
	}
	return false
}

// HasHymn reports whether the hymn id is already recorded as completed.
func (p *ProgressRecord) HasHymn(id int) bool {
	for _, h := range p.CompletedHymnIDs {
		if h == id {
			return true
		}
	}
	return false
}

// StreakRecord tracks day-over-day visit continuity.
type StreakRecord struct {
	CurrentStreak          int       `json:"currentStreak"`
	LongestStreak          int       `json:"longestStreak"`
	LastVisitDate          time.Time `json:"lastVisitDate"`
	StreakFreezesRemaining int       `json:"streakFreezesRemaining"`
}

// XPRecord holds the within-level XP counter. CurrentXP resets on each
// level-up; the lifetime total lives in ProgressRecord.XPTotal.
type XPRecord struct {
	CurrentXP     int `json:"currentXP"`
	CurrentLevel  int `json:"currentLevel"`
	XPToNextLevel int `json:"xpToNextLevel"`
}

// MicroActionLog maps a local calendar date ("2006-01-02") to the ids of the
// micro-actions completed on that date.
type MicroActionLog map[string][]string

// Snapshot is the export document written to downloadable .json files.
// Import accepts any subset of the five record fields; absent fields leave
// the corresponding store untouched.
type Snapshot struct {
	Progress     *ProgressRecord `json:"progress"`
	Streak       *StreakRecord   `json:"streak"`
	Achievements []string        `json:"achievements"`
	MicroActions MicroActionLog  `json:"microActions"`
	XP           *XPRecord       `json:"xp"`
	ExportDate   string          `json:"exportDate"`
}

// ── Record Defaults ───────────────────────────────────────

func DefaultProgress() *ProgressRecord {
	return &ProgressRecord{
		CompletedHymnIDs:    []int{},
		CompletedLessonKeys: []string{},
		Level:               1,
	}
}

func DefaultStreak(now time.Time) *StreakRecord {
	return &StreakRecord{
		LastVisitDate:          now,
		StreakFreezesRemaining: 2,
	}
}

func DefaultXP() *XPRecord {
	return &XPRecord{
		CurrentXP:     0,
		CurrentLevel:  1,
		XPToNextLevel: 100,
	}
}
