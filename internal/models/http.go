package models

// ── Request Types ─────────────────────────────────────────

type CompleteLessonRequest struct {
	HymnID   int `json:"hymn_id"`
	LessonID int `json:"lesson_id"`
}

type CompletePracticeRequest struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type EthicalAnswerRequest struct {
	OptionID string `json:"option_id"`
}

// ── Response Types ────────────────────────────────────────

type ErrorResponse struct {
	Error string `json:"error"`
}

type SessionResponse struct {
	Token string `json:"token"`
}

type LessonCompleteResponse struct {
	LessonKey        string   `json:"lesson_key"`
	AlreadyCompleted bool     `json:"already_completed"`
	VersesLearned    int      `json:"verses_learned"`
	XPAwarded        int      `json:"xp_awarded"`
	HymnCompleted    bool     `json:"hymn_completed"`
	MicroAction      string   `json:"micro_action,omitempty"`
	XP               XPRecord `json:"xp"`
}

type DashboardResponse struct {
	Progress *ProgressRecord `json:"progress"`
	Streak   *StreakRecord   `json:"streak"`
	XP       *XPRecord       `json:"xp"`
	Quote    *QuoteView      `json:"daily_quote,omitempty"`
}

type QuoteView struct {
	Sanskrit        string `json:"sanskrit"`
	Transliteration string `json:"transliteration"`
	Meaning         string `json:"meaning"`
	Reference       string `json:"reference"`
}

// AchievementStatus pairs a catalog achievement with the session's state.
// Progress is a 0-100 percentage toward the unlock criterion.
type AchievementStatus struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	XP          int     `json:"xp"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
}

type UnlockResponse struct {
	Unlocked  bool     `json:"unlocked"`
	XPAwarded int      `json:"xp_awarded"`
	XP        XPRecord `json:"xp"`
}

type QuestCompleteResponse struct {
	Completed bool     `json:"completed"`
	XPAwarded int      `json:"xp_awarded"`
	XP        XPRecord `json:"xp"`
}

type EthicalAnswerResponse struct {
	RitaAligned bool     `json:"rita_aligned"`
	XPAwarded   int      `json:"xp_awarded"`
	XP          XPRecord `json:"xp"`
}

type PracticeCompleteResponse struct {
	XPAwarded int      `json:"xp_awarded"`
	XP        XPRecord `json:"xp"`
}

type TodayQuestsResponse struct {
	Date            string   `json:"date"`
	CompletedMicro  []string `json:"completed_micro_actions"`
	CompletedQuests []string `json:"completed_quests"`
}

type ImportResponse struct {
	Applied []string `json:"applied"`
}

type TutorialResponse struct {
	Completed bool `json:"completed"`
}
