package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rigveda-learn/backend/internal/catalog"
	"github.com/rigveda-learn/backend/internal/models"
	"github.com/rigveda-learn/backend/internal/session"
)

// importBodyLimit caps uploaded progress documents.
const importBodyLimit = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getSessionID(r *http.Request) (string, bool) {
	return session.FromContext(r.Context())
}

// ── Dashboard ───────────────────────────────────────────

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	h.service.Initialize(sessionID)
	streak := h.service.TouchStreak(sessionID)

	resp := models.DashboardResponse{
		Progress: h.service.Progress(sessionID),
		Streak:   streak,
		XP:       h.service.XP(sessionID),
	}
	if q := dailyQuote(h.service.now()); q != nil {
		resp.Quote = &models.QuoteView{
			Sanskrit:        q.Sanskrit,
			Transliteration: q.Transliteration,
			Meaning:         q.Meaning,
			Reference:       q.Reference,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Records ─────────────────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.Progress(sessionID))
}

func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.Streak(sessionID))
}

func (h *Handler) TouchStreak(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.TouchStreak(sessionID))
}

func (h *Handler) GetXP(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.XP(sessionID))
}

// ── Lessons ─────────────────────────────────────────────

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	var req models.CompleteLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	hymn := catalog.HymnByID(req.HymnID)
	if hymn == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Hymn not found"})
		return
	}
	lesson := hymn.LessonByID(req.LessonID)
	if lesson == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Lesson not found"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.CompleteLesson(sessionID, hymn, lesson))
}

// ── Achievements ────────────────────────────────────────

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.AchievementStatuses(sessionID))
}

func (h *Handler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	a := catalog.AchievementByID(mux.Vars(r)["id"])
	if a == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Achievement not found"})
		return
	}

	resp := models.UnlockResponse{Unlocked: h.service.UnlockAchievement(sessionID, a.ID)}
	if resp.Unlocked {
		resp.XPAwarded = a.XP
		h.service.AwardXP(sessionID, a.XP)
	}
	resp.XP = *h.service.XP(sessionID)

	writeJSON(w, http.StatusOK, resp)
}

// ── Quests ──────────────────────────────────────────────

func (h *Handler) GetTodayQuests(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	today := h.service.today()
	micro := h.service.MicroActions(sessionID)[today]
	if micro == nil {
		micro = []string{}
	}

	writeJSON(w, http.StatusOK, models.TodayQuestsResponse{
		Date:            today,
		CompletedMicro:  micro,
		CompletedQuests: h.service.CompletedQuests(sessionID),
	})
}

func (h *Handler) CompleteMicroAction(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	action := catalog.MicroActionByID(mux.Vars(r)["id"])
	if action == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Micro-action not found"})
		return
	}

	resp := models.QuestCompleteResponse{Completed: h.service.CompleteMicroAction(sessionID, action.ID)}
	if resp.Completed {
		resp.XPAwarded = action.XP
		h.service.AwardXP(sessionID, action.XP)
	}
	resp.XP = *h.service.XP(sessionID)

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	quest := catalog.EnvironmentalQuestByID(mux.Vars(r)["id"])
	if quest == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quest not found"})
		return
	}

	resp := models.QuestCompleteResponse{Completed: h.service.CompleteQuest(sessionID, quest.ID)}
	if resp.Completed {
		resp.XPAwarded = quest.XP
		h.service.AwardXP(sessionID, quest.XP)
	}
	resp.XP = *h.service.XP(sessionID)

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AnswerEthicalChallenge(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	challenge := catalog.EthicalChallengeByID(mux.Vars(r)["id"])
	if challenge == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Challenge not found"})
		return
	}

	var req models.EthicalAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	option := challenge.OptionByID(req.OptionID)
	if option == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown option"})
		return
	}

	resp, err := h.service.AnswerEthicalChallenge(sessionID, challenge, option)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record answer"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Practice ────────────────────────────────────────────

func (h *Handler) CompletePractice(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	var req models.CompletePracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Correct < 0 || req.Total < 0 || req.Correct > req.Total {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "correct must be between 0 and total"})
		return
	}

	xp, err := h.service.CompletePractice(sessionID, req.Correct)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record practice"})
		return
	}

	writeJSON(w, http.StatusOK, models.PracticeCompleteResponse{
		XPAwarded: req.Correct * PracticeVerseXP,
		XP:        *xp,
	})
}

// ── Export / Import ─────────────────────────────────────

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.ExportFilename()))
	writeJSON(w, http.StatusOK, h.service.Export(sessionID))
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, importBodyLimit))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read request body"})
		return
	}

	applied, err := h.service.Import(sessionID, body)
	if err != nil {
		if errors.Is(err, ErrMalformedDocument) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Malformed progress document"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Import failed"})
		return
	}

	writeJSON(w, http.StatusOK, models.ImportResponse{Applied: applied})
}

// ── Tutorial ────────────────────────────────────────────

func (h *Handler) GetTutorial(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	writeJSON(w, http.StatusOK, models.TutorialResponse{Completed: h.service.TutorialCompleted(sessionID)})
}

func (h *Handler) CompleteTutorial(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := getSessionID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required"})
		return
	}

	h.service.MarkTutorialCompleted(sessionID)
	writeJSON(w, http.StatusOK, models.TutorialResponse{Completed: true})
}

// ── Helpers ─────────────────────────────────────────────

// dailyQuote picks the quote of the current day, rotating through the
// catalog by day of year.
func dailyQuote(now time.Time) *catalog.Quote {
	quotes := catalog.Quotes()
	if len(quotes) == 0 {
		return nil
	}
	return &quotes[now.YearDay()%len(quotes)]
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
