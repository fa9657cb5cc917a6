package game

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func fullSession(n int) *models.GameSession {
	s := &models.GameSession{NarratorID: "narrator", PhaseTime: "12:00", SignupChannelID: "signup"}
	for i := 0; i < n; i++ {
		s.Players = append(s.Players, models.Player{ID: string(rune('a' + i))})
	}
	return s
}

func TestCanStartPreconditionOrder(t *testing.T) {
	cfg := testConfig(2, []models.DistributionEntry{
		{Faction: models.FactionTown, Count: 1},
		{Faction: models.FactionMafia, Count: 1},
	})

	s := &models.GameSession{}
	if err := CanStart(s, cfg, "x"); !errors.Is(err, ErrNoNarrator) {
		t.Fatalf("expected ErrNoNarrator, got %v", err)
	}

	s.NarratorID = "narrator"
	if err := CanStart(s, cfg, "imposter"); !errors.Is(err, ErrNotNarrator) {
		t.Fatalf("expected ErrNotNarrator, got %v", err)
	}

	if err := CanStart(s, cfg, "narrator"); !errors.Is(err, ErrRosterNotFull) {
		t.Fatalf("expected ErrRosterNotFull, got %v", err)
	}

	s.Players = []models.Player{{ID: "a"}, {ID: "b"}}
	if err := CanStart(s, cfg, "narrator"); !errors.Is(err, ErrNoPhaseTime) {
		t.Fatalf("expected ErrNoPhaseTime, got %v", err)
	}

	s.PhaseTime = "12:00"
	if err := CanStart(s, cfg, "narrator"); err != nil {
		t.Fatalf("expected start to be allowed, got %v", err)
	}

	s.GameID = "already"
	if err := CanStart(s, cfg, "narrator"); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("expected ErrGameStarted, got %v", err)
	}
}

func TestAssignRolesFactionCounts(t *testing.T) {
	s := fullSession(9)
	assigned, err := AssignRoles(s.Players, DefaultDistribution, DefaultCatalog, testRNG())
	if err != nil {
		t.Fatal(err)
	}

	counts := map[models.Faction]int{}
	for _, p := range assigned {
		if p.Role == nil {
			t.Fatalf("player %s has no role", p.ID)
		}
		counts[p.Role.Faction]++
	}
	if counts[models.FactionTown] != 4 || counts[models.FactionMafia] != 3 || counts[models.FactionNeutral] != 2 {
		t.Fatalf("unexpected faction counts: %v", counts)
	}
}

func TestAssignRolesTitlesMatchFaction(t *testing.T) {
	s := fullSession(9)
	assigned, err := AssignRoles(s.Players, DefaultDistribution, DefaultCatalog, testRNG())
	if err != nil {
		t.Fatal(err)
	}

	byTitle := map[string]models.Faction{}
	for _, role := range DefaultCatalog {
		byTitle[role.Title] = role.Faction
	}
	for _, p := range assigned {
		if byTitle[p.Role.Title] != p.Role.Faction {
			t.Fatalf("role %s tagged %s, catalog says %s", p.Role.Title, p.Role.Faction, byTitle[p.Role.Title])
		}
	}
}

func TestAssignRolesKeepsInputAndOrder(t *testing.T) {
	s := fullSession(9)
	assigned, err := AssignRoles(s.Players, DefaultDistribution, DefaultCatalog, testRNG())
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range s.Players {
		if p.Role != nil {
			t.Fatal("input roster was mutated")
		}
		if assigned[i].ID != p.ID {
			t.Fatalf("roster order changed at %d: %s vs %s", i, assigned[i].ID, p.ID)
		}
	}
}

func TestAssignRolesDistributionMismatch(t *testing.T) {
	s := fullSession(3)
	_, err := AssignRoles(s.Players, DefaultDistribution, DefaultCatalog, testRNG())
	if !errors.Is(err, ErrDistributionMismatch) {
		t.Fatalf("expected ErrDistributionMismatch, got %v", err)
	}
}

func TestAssignRolesTwoPlayerGame(t *testing.T) {
	dist := []models.DistributionEntry{
		{Faction: models.FactionTown, Count: 1},
		{Faction: models.FactionMafia, Count: 1},
	}
	s := fullSession(2)
	assigned, err := AssignRoles(s.Players, dist, DefaultCatalog, testRNG())
	if err != nil {
		t.Fatal(err)
	}

	counts := map[models.Faction]int{}
	for _, p := range assigned {
		counts[p.Role.Faction]++
	}
	if counts[models.FactionTown] != 1 || counts[models.FactionMafia] != 1 {
		t.Fatalf("unexpected faction counts: %v", counts)
	}
}

func TestStartMintsGameID(t *testing.T) {
	cfg := testConfig(2, []models.DistributionEntry{
		{Faction: models.FactionTown, Count: 1},
		{Faction: models.FactionMafia, Count: 1},
	})
	s := fullSession(2)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if err := Start(s, cfg, "narrator", testRNG(), now); err != nil {
		t.Fatal(err)
	}
	if s.GameID == "" {
		t.Fatal("expected a game id")
	}
	if s.StartedAt == nil || !s.StartedAt.Equal(now) {
		t.Fatalf("unexpected started timestamp: %v", s.StartedAt)
	}
	if !s.Started() {
		t.Fatal("session should report started")
	}
}

func TestStartRejectedLeavesSessionUntouched(t *testing.T) {
	cfg := testConfig(2, []models.DistributionEntry{
		{Faction: models.FactionTown, Count: 1},
		{Faction: models.FactionMafia, Count: 1},
	})
	s := fullSession(2)
	s.PhaseTime = ""

	err := Start(s, cfg, "narrator", testRNG(), time.Now())
	if !errors.Is(err, ErrNoPhaseTime) {
		t.Fatalf("expected ErrNoPhaseTime, got %v", err)
	}
	if s.GameID != "" || s.StartedAt != nil || s.Players[0].Role != nil {
		t.Fatal("rejected start mutated the session")
	}
}

func TestRoleManifest(t *testing.T) {
	role := models.Role{Title: "Sheriff", Faction: models.FactionTown}
	s := &models.GameSession{Players: []models.Player{{ID: "a", Role: &role}}}

	got := RoleManifest(s, namesByID(map[string]string{"a": "Alice"}))
	want := "Role list:\n1. Alice - Sheriff (Town)\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
