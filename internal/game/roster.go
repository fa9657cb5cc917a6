package game

import (
	"fmt"
	"strings"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// Config carries the externally supplied game tuning. It is read from the
// environment at startup and never mutated afterwards.
type Config struct {
	MaxPlayers   int
	Distribution []models.DistributionEntry
	Catalog      []models.Role
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("max players must be positive, got %d", c.MaxPlayers)
	}
	if total := models.DistributionTotal(c.Distribution); total != c.MaxPlayers {
		return fmt.Errorf("distribution total %d does not match max players %d", total, c.MaxPlayers)
	}
	for _, entry := range c.Distribution {
		if !entry.Faction.Valid() {
			return fmt.Errorf("unknown faction %q in distribution", entry.Faction)
		}
		if entry.Count <= 0 {
			return fmt.Errorf("distribution count for %s must be positive, got %d", entry.Faction, entry.Count)
		}
		if len(rolesForFaction(c.Catalog, entry.Faction)) == 0 {
			return fmt.Errorf("role catalog has no %s roles", entry.Faction)
		}
	}
	return nil
}

// Join appends a participant to the roster, preserving join order.
func Join(session *models.GameSession, cfg Config, playerID string) error {
	if session.HasPlayer(playerID) {
		return ErrAlreadySignedUp
	}
	if len(session.Players) >= cfg.MaxPlayers {
		return ErrRosterFull
	}
	session.Players = append(session.Players, models.Player{ID: playerID})
	return nil
}

// Leave removes a participant from the roster. The relative order of the
// remaining entries is preserved.
func Leave(session *models.GameSession, playerID string) error {
	i := session.PlayerIndex(playerID)
	if i < 0 {
		return ErrNotSignedUp
	}
	session.Players = append(session.Players[:i], session.Players[i+1:]...)
	return nil
}

// NameResolver maps a participant id to their current display name. Name
// resolution lives with the chat transport, not the game core.
type NameResolver func(id string) string

// FormatRoster renders the numbered player list: occupied slots first, then
// empty numbered lines up to the configured maximum. The final flag only
// changes the heading.
func FormatRoster(session *models.GameSession, cfg Config, final bool, resolve NameResolver) string {
	var b strings.Builder
	if final {
		b.WriteString("Final list of players:\n")
	} else {
		b.WriteString("Players:\n")
	}
	for i, p := range session.Players {
		name := resolve(p.ID)
		if name == "" {
			name = "[missing name]"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	for i := len(session.Players) + 1; i <= cfg.MaxPlayers; i++ {
		fmt.Fprintf(&b, "%d.\n", i)
	}
	return b.String()
}

func rolesForFaction(catalog []models.Role, faction models.Faction) []models.Role {
	var pool []models.Role
	for _, role := range catalog {
		if role.Faction == faction {
			pool = append(pool, role)
		}
	}
	return pool
}
