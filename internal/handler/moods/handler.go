package moods

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindfulmate/backend/internal/model/chat"
	"github.com/mindfulmate/backend/internal/store"
	"github.com/mindfulmate/backend/pkg/utils"
)

// Handler serves the mood history routes.
type Handler struct {
	store *store.Store
}

// New creates the mood handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the mood routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/moods", h.handleList)
	r.Post("/moods", h.handleAppend)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListMoods(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood history")
		return
	}
	if entries == nil {
		// Serialize empty history as [] rather than null.
		entries = []chat.MoodEntry{}
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mood string `json:"mood"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.store.AppendMood(r.Context(), payload.Mood)
	if err != nil {
		if errors.Is(err, store.ErrInvalidMood) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to save mood")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}
