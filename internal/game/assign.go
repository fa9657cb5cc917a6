package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// CanStart checks every start precondition without mutating the session.
// All validation happens before any assignment is computed, so a rejected
// start leaves the roster untouched.
func CanStart(session *models.GameSession, cfg Config, issuerID string) error {
	if session.NarratorID == "" {
		return ErrNoNarrator
	}
	if issuerID != session.NarratorID {
		return ErrNotNarrator
	}
	if session.Started() {
		return ErrGameStarted
	}
	if len(session.Players) < cfg.MaxPlayers {
		return ErrRosterNotFull
	}
	if session.PhaseTime == "" {
		return ErrNoPhaseTime
	}
	if models.DistributionTotal(cfg.Distribution) != len(session.Players) {
		return ErrDistributionMismatch
	}
	return nil
}

// AssignRoles deals a faction-balanced random role to every roster entry and
// returns the assigned roster; the input slice is not modified.
//
// Roster positions are permuted uniformly (Fisher–Yates via rng.Perm), then
// the distribution table is walked in declared order: each entry consumes the
// next count permuted positions and draws that position's role uniformly and
// independently from the catalog subset matching the entry's faction. Draws
// are with replacement, so a title can repeat within a faction.
func AssignRoles(players []models.Player, distribution []models.DistributionEntry, catalog []models.Role, rng *rand.Rand) ([]models.Player, error) {
	if models.DistributionTotal(distribution) != len(players) {
		return nil, ErrDistributionMismatch
	}

	order := rng.Perm(len(players))
	assigned := make([]models.Player, len(players))
	copy(assigned, players)

	i := 0
	for _, entry := range distribution {
		pool := rolesForFaction(catalog, entry.Faction)
		if len(pool) == 0 {
			return nil, fmt.Errorf("role catalog has no %s roles", entry.Faction)
		}
		for j := 0; j < entry.Count; j++ {
			role := pool[rng.IntN(len(pool))]
			assigned[order[i]].Role = &role
			i++
		}
	}
	return assigned, nil
}

// Start validates the preconditions, deals roles and marks the session
// started. On any error the session is left unchanged.
func Start(session *models.GameSession, cfg Config, issuerID string, rng *rand.Rand, now time.Time) error {
	if err := CanStart(session, cfg, issuerID); err != nil {
		return err
	}
	assigned, err := AssignRoles(session.Players, cfg.Distribution, cfg.Catalog, rng)
	if err != nil {
		return err
	}
	session.Players = assigned
	session.GameID = ulid.Make().String()
	startedAt := now.UTC()
	session.StartedAt = &startedAt
	return nil
}

// RoleManifest renders the narrator-only role list: position, display name,
// role title and faction per line. Never posted to the public roster channel.
func RoleManifest(session *models.GameSession, resolve NameResolver) string {
	var b strings.Builder
	b.WriteString("Role list:\n")
	for i, p := range session.Players {
		name := resolve(p.ID)
		if name == "" {
			name = "[missing name]"
		}
		if p.Role == nil {
			fmt.Fprintf(&b, "%d. %s - unassigned\n", i+1, name)
			continue
		}
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, name, p.Role.Title, p.Role.Faction.DisplayName())
	}
	return b.String()
}
