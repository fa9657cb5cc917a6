package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

func testConfig(max int, dist []models.DistributionEntry) Config {
	return Config{MaxPlayers: max, Distribution: dist, Catalog: DefaultCatalog}
}

func namesByID(m map[string]string) NameResolver {
	return func(id string) string { return m[id] }
}

func TestJoinPreservesOrder(t *testing.T) {
	cfg := testConfig(3, []models.DistributionEntry{{Faction: models.FactionTown, Count: 3}})
	session := &models.GameSession{}

	for _, id := range []string{"a", "b", "c"} {
		if err := Join(session, cfg, id); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}

	for i, want := range []string{"a", "b", "c"} {
		if session.Players[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, session.Players[i].ID)
		}
	}
}

func TestJoinDuplicate(t *testing.T) {
	cfg := testConfig(3, []models.DistributionEntry{{Faction: models.FactionTown, Count: 3}})
	session := &models.GameSession{}

	if err := Join(session, cfg, "a"); err != nil {
		t.Fatal(err)
	}
	if err := Join(session, cfg, "a"); !errors.Is(err, ErrAlreadySignedUp) {
		t.Fatalf("expected ErrAlreadySignedUp, got %v", err)
	}
	if len(session.Players) != 1 {
		t.Fatalf("duplicate join changed the roster: %d entries", len(session.Players))
	}
}

func TestJoinFullRoster(t *testing.T) {
	cfg := testConfig(2, []models.DistributionEntry{{Faction: models.FactionTown, Count: 2}})
	session := &models.GameSession{}

	Join(session, cfg, "a")
	Join(session, cfg, "b")
	if err := Join(session, cfg, "c"); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	if len(session.Players) != 2 {
		t.Fatalf("rejected join changed the roster: %d entries", len(session.Players))
	}
}

func TestLeaveKeepsRemainingOrder(t *testing.T) {
	cfg := testConfig(3, []models.DistributionEntry{{Faction: models.FactionTown, Count: 3}})
	session := &models.GameSession{}
	Join(session, cfg, "a")
	Join(session, cfg, "b")
	Join(session, cfg, "c")

	if err := Leave(session, "b"); err != nil {
		t.Fatal(err)
	}
	if len(session.Players) != 2 || session.Players[0].ID != "a" || session.Players[1].ID != "c" {
		t.Fatalf("unexpected roster after leave: %+v", session.Players)
	}
}

func TestLeaveNotSignedUp(t *testing.T) {
	session := &models.GameSession{}
	if err := Leave(session, "ghost"); !errors.Is(err, ErrNotSignedUp) {
		t.Fatalf("expected ErrNotSignedUp, got %v", err)
	}
}

func TestFormatRosterPadsEmptySlots(t *testing.T) {
	cfg := testConfig(4, []models.DistributionEntry{{Faction: models.FactionTown, Count: 4}})
	session := &models.GameSession{Players: []models.Player{{ID: "a"}, {ID: "b"}}}

	got := FormatRoster(session, cfg, false, namesByID(map[string]string{"a": "Alice", "b": "Bob"}))
	want := "Players:\n1. Alice\n2. Bob\n3.\n4.\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRosterFinalHeading(t *testing.T) {
	cfg := testConfig(1, []models.DistributionEntry{{Faction: models.FactionTown, Count: 1}})
	session := &models.GameSession{Players: []models.Player{{ID: "a"}}}

	got := FormatRoster(session, cfg, true, namesByID(map[string]string{"a": "Alice"}))
	if !strings.HasPrefix(got, "Final list of players:\n") {
		t.Fatalf("expected final heading, got %q", got)
	}
}

func TestFormatRosterMissingName(t *testing.T) {
	cfg := testConfig(1, []models.DistributionEntry{{Faction: models.FactionTown, Count: 1}})
	session := &models.GameSession{Players: []models.Player{{ID: "gone"}}}

	got := FormatRoster(session, cfg, false, namesByID(nil))
	if !strings.Contains(got, "1. [missing name]") {
		t.Fatalf("expected placeholder for unresolvable name, got %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{MaxPlayers: DefaultMaxPlayers, Distribution: DefaultDistribution, Catalog: DefaultCatalog}).Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	bad := Config{MaxPlayers: 5, Distribution: DefaultDistribution, Catalog: DefaultCatalog}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected mismatched totals to fail validation")
	}
}
