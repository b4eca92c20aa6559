package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rigveda-learn/backend/internal/models"
)

// Handler serves the read-only content catalog. No session is required;
// the catalog is identical for everyone.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) ListHymns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Hymns())
}

func (h *Handler) GetHymn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid hymn ID"})
		return
	}

	hymn := HymnByID(id)
	if hymn == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Hymn not found"})
		return
	}

	writeJSON(w, http.StatusOK, hymn)
}

// ListQuests returns every quest-like catalog entry in one payload.
func (h *Handler) ListQuests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"micro_actions":        MicroActions(),
		"environmental_quests": EnvironmentalQuests(),
		"ethical_challenges":   EthicalChallenges(),
	})
}

// GetQuote returns the quote of the day, rotating by day of year.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	all := Quotes()
	if len(all) == 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No quotes available"})
		return
	}

	writeJSON(w, http.StatusOK, all[time.Now().YearDay()%len(all)])
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
