package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	analyticspkg "github.com/mindfulmate/backend/internal/analytics"
	"github.com/mindfulmate/backend/internal/store"
	"github.com/mindfulmate/backend/pkg/utils"
)

// Handler serves the derived mood analytics route.
type Handler struct {
	store *store.Store
	now   func() time.Time
}

// New creates the analytics handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st, now: time.Now}
}

// RegisterRoutes mounts the analytics routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analytics/summary", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := analyticspkg.ParseWindow(r.URL.Query().Get("window"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "window must be all, week or month")
		return
	}

	entries, err := h.store.ListMoods(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, analyticspkg.Summarize(entries, window, h.now()))
}
