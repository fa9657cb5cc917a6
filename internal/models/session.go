package models

import "time"

// Player is one roster entry. Role stays nil until the game starts.
type Player struct {
	ID   string `json:"id"`
	Role *Role  `json:"role,omitempty"`
}

// GameSession is the state of one game instance, keyed by guild and channel
// group so multiple games can run in the same guild. Records are created
// lazily (empty) on first read and persisted after every mutating command.
type GameSession struct {
	// GameID is minted when the game starts; empty for a session in signups.
	GameID string `json:"game_id,omitempty"`

	NarratorID      string `json:"narrator_id,omitempty"`
	SignupChannelID string `json:"signup_channel_id,omitempty"`

	// PhaseTime is the recurring daily phase time, "HH:mm" 24-hour UTC,
	// stored verbatim as validated.
	PhaseTime string `json:"phase_time,omitempty"`

	// Players is the roster in join order. Display position matters; the
	// order is not touched until role assignment shuffles a copy of the
	// index space at game start.
	Players []Player `json:"players,omitempty"`

	StartedAt *time.Time `json:"started_at,omitempty"`
}

// Started reports whether roles have been dealt for this session.
func (s *GameSession) Started() bool {
	return s.GameID != ""
}

// HasPlayer reports whether the participant is on the roster.
func (s *GameSession) HasPlayer(id string) bool {
	return s.PlayerIndex(id) >= 0
}

// PlayerIndex returns the roster position of a participant, or -1.
func (s *GameSession) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
