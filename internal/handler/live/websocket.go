// Package live pushes conversation turns over a websocket so the web client
// can render the bot reply and mood update without polling.
package live

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	sessionservice "github.com/mindfulmate/backend/internal/service/session"
)

// Handler upgrades connections and relays turns through the session.
type Handler struct {
	session  *sessionservice.Session
	upgrader websocket.Upgrader
}

// New creates the live chat handler.
func New(sess *sessionservice.Session) *Handler {
	return &Handler{
		session: sess,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type messagePayload struct {
	Content string `json:"content"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[ws] connection %s opened", connID)

	h.send(conn, "connected", map[string]string{
		"connection": connID,
		"session":    h.session.ID(),
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] connection %s read error: %v", connID, err)
			}
			return
		}

		switch msg.Type {
		case "message":
			h.handleTurn(r, conn, msg.Data)
		case "ping":
			h.send(conn, "pong", nil)
		default:
			h.sendError(conn, "unsupported message type: "+msg.Type)
		}
	}
}

// handleTurn runs one conversation turn and streams its outcome back. Turns
// are serialized by the session itself; a concurrent submission from another
// surface comes back as an in-flight error event.
func (h *Handler) handleTurn(r *http.Request, conn *websocket.Conn, raw json.RawMessage) {
	var payload messagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(conn, "invalid message payload")
		return
	}

	turn, err := h.session.Send(r.Context(), payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, sessionservice.ErrEmptyInput):
			h.sendError(conn, "message is empty")
		case errors.Is(err, sessionservice.ErrTurnInFlight):
			h.sendError(conn, "a turn is already in flight")
		default:
			log.Printf("[ws] turn failed: %v", err)
			h.sendError(conn, "failed to process message")
		}
		return
	}

	h.send(conn, "user", turn.User)
	h.send(conn, "bot", turn.Bot)
	h.send(conn, "mood", map[string]any{
		"mood":        turn.Mood,
		"suggestions": turn.Suggestions,
	})
}

func (h *Handler) send(conn *websocket.Conn, msgType string, data interface{}) {
	out := outgoingMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, "error", map[string]string{"error": message})
}
