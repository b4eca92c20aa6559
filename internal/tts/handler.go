package tts

import (
	"encoding/json"
	"net/http"

	"github.com/rigveda-learn/backend/internal/models"
)

// maxTextLen bounds synthesis input; verses in the catalog are far shorter.
const maxTextLen = 500

// Handler serves pronunciation audio. A nil client means TTS is not
// configured and every request answers 503.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Text-to-speech is not configured"})
		return
	}

	text := r.URL.Query().Get("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text parameter is required"})
		return
	}
	if len(text) > maxTextLen {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text is too long"})
		return
	}

	audio, err := h.client.Synthesize(r.Context(), text, r.URL.Query().Get("lang"))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Speech synthesis failed"})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(audio)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
