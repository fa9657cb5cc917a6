// Package handlers implements the admin HTTP endpoints: health, operational
// stats and a read-only roster view. The bot itself is driven entirely over
// the chat gateway; this surface exists for operators and monitoring.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/relay"
	"github.com/emiliskiskis/mafia-bot/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store store.SessionStore
	redis *store.RedisStore
	gate  *confirm.Gate
	relay *relay.Service
}

// NewHandler creates a new Handler. redis, gate and relay may be nil.
func NewHandler(st store.SessionStore, redis *store.RedisStore, gate *confirm.Gate, rl *relay.Service) *Handler {
	return &Handler{store: st, redis: redis, gate: gate, relay: rl}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
