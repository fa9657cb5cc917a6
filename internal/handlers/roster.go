package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RosterResponse is the read-only session view for operators. Role
// assignments are deliberately absent; they stay between the bot and the
// narrator.
type RosterResponse struct {
	GameID          string   `json:"game_id,omitempty"`
	Started         bool     `json:"started"`
	NarratorID      string   `json:"narrator_id,omitempty"`
	SignupChannelID string   `json:"signup_channel_id,omitempty"`
	PhaseTime       string   `json:"phase_time,omitempty"`
	PlayerCount     int      `json:"player_count"`
	Players         []string `json:"players,omitempty"`
	StartedAt       string   `json:"started_at,omitempty"`
}

// Roster handles GET /v1/guilds/{guildID}/groups/{groupID}/roster.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	groupID := chi.URLParam(r, "groupID")
	if guildID == "" || groupID == "" {
		h.Error(w, http.StatusBadRequest, "guild and group ids are required")
		return
	}

	session, err := h.store.GetGameSession(r.Context(), guildID, groupID)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	resp := RosterResponse{
		GameID:          session.GameID,
		Started:         session.Started(),
		NarratorID:      session.NarratorID,
		SignupChannelID: session.SignupChannelID,
		PhaseTime:       session.PhaseTime,
		PlayerCount:     len(session.Players),
	}
	for _, p := range session.Players {
		resp.Players = append(resp.Players, p.ID)
	}
	if session.StartedAt != nil {
		resp.StartedAt = session.StartedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	h.JSON(w, http.StatusOK, resp)
}
