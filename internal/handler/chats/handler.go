package chats

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mindfulmate/backend/internal/model/chat"
	"github.com/mindfulmate/backend/internal/store"
	"github.com/mindfulmate/backend/pkg/utils"
)

// Handler serves the raw chat history routes.
type Handler struct {
	store *store.Store
}

// New creates the chat history handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the chat history routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats", h.handleList)
	r.Post("/chats", h.handleAppend)
	r.Delete("/chats", h.handleClear)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListMessages(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Role != chat.RoleUser && payload.Role != chat.RoleBot {
		utils.RespondError(w, http.StatusBadRequest, "role must be user or bot")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	msg, err := h.store.AppendMessage(r.Context(), payload.Role, payload.Content)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, msg)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearMessages(r.Context()); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to clear chat history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
