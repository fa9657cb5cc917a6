package models

// Faction is a role's alignment. The distribution table balances a game by
// requiring a fixed number of players per faction.
type Faction string

const (
	FactionTown    Faction = "town"
	FactionMafia   Faction = "mafia"
	FactionNeutral Faction = "neutral"
)

// DisplayName returns the capitalized faction name used in player-facing text.
func (f Faction) DisplayName() string {
	switch f {
	case FactionTown:
		return "Town"
	case FactionMafia:
		return "Mafia"
	case FactionNeutral:
		return "Neutral"
	default:
		return string(f)
	}
}

// Valid reports whether f is one of the three known factions.
func (f Faction) Valid() bool {
	switch f {
	case FactionTown, FactionMafia, FactionNeutral:
		return true
	}
	return false
}

// Role is a catalog entry assigned to a player at game start.
type Role struct {
	Title   string  `json:"title"`
	Faction Faction `json:"faction"`
}

// DistributionEntry is one row of the role distribution table: how many
// players receive a role of the given faction. Table order is significant.
type DistributionEntry struct {
	Faction Faction `json:"faction"`
	Count   int     `json:"count"`
}

// DistributionTotal sums the player counts across a distribution table.
func DistributionTotal(distribution []DistributionEntry) int {
	total := 0
	for _, entry := range distribution {
		total += entry.Count
	}
	return total
}
