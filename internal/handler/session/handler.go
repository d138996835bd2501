package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionservice "github.com/mindfulmate/backend/internal/service/session"
	"github.com/mindfulmate/backend/pkg/utils"
)

// Handler serves the conversation turn routes.
type Handler struct {
	session *sessionservice.Session
}

// New creates the session handler.
func New(sess *sessionservice.Session) *Handler {
	return &Handler{session: sess}
}

// RegisterRoutes mounts the turn routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/messages", h.handleSend)
	r.Get("/session/stream", h.handleStream)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.session.Send(r.Context(), payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, sessionservice.ErrEmptyInput):
			utils.RespondError(w, http.StatusBadRequest, "message is empty")
		case errors.Is(err, sessionservice.ErrTurnInFlight):
			utils.RespondError(w, http.StatusConflict, "a turn is already in flight")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, turn)
}

// handleStream runs one turn and reports its progress as SSE events, so the
// client can render the user bubble before the classification settles.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", map[string]string{"session": h.session.ID()})

	turn, err := h.session.Send(r.Context(), message)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": streamErrorMessage(err)})
		return
	}

	utils.SendSSEEvent(w, flusher, "user", turn.User)
	utils.SendSSEEvent(w, flusher, "bot", turn.Bot)
	utils.SendSSEEvent(w, flusher, "mood", map[string]any{
		"mood":        turn.Mood,
		"suggestions": turn.Suggestions,
	})
	utils.SendSSEEvent(w, flusher, "done", map[string]bool{"finished": true})
}

func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, sessionservice.ErrEmptyInput):
		return "message is empty"
	case errors.Is(err, sessionservice.ErrTurnInFlight):
		return "a turn is already in flight"
	default:
		return "failed to process message"
	}
}
