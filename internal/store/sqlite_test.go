package store

import (
	"context"
	"testing"
	"time"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestMissingRecordsReadEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	settings, err := s.GetGuildSettings(ctx, "guild")
	if err != nil {
		t.Fatal(err)
	}
	if settings.NarratorRoleID != "" {
		t.Fatalf("expected empty settings, got %+v", settings)
	}

	session, err := s.GetGameSession(ctx, "guild", "group")
	if err != nil {
		t.Fatal(err)
	}
	if session.NarratorID != "" || len(session.Players) != 0 || session.Started() {
		t.Fatalf("expected empty session, got %+v", session)
	}
}

func TestGuildSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutGuildSettings(ctx, "guild", models.GuildSettings{NarratorRoleID: "role-1"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetGuildSettings(ctx, "guild")
	if err != nil {
		t.Fatal(err)
	}
	if got.NarratorRoleID != "role-1" {
		t.Fatalf("expected role-1, got %q", got.NarratorRoleID)
	}

	// Upsert overwrites in place.
	if err := s.PutGuildSettings(ctx, "guild", models.GuildSettings{NarratorRoleID: "role-2"}); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetGuildSettings(ctx, "guild")
	if err != nil {
		t.Fatal(err)
	}
	if got.NarratorRoleID != "role-2" {
		t.Fatalf("expected role-2 after overwrite, got %q", got.NarratorRoleID)
	}
}

func TestGameSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	startedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	role := models.Role{Title: "Sheriff", Faction: models.FactionTown}
	in := models.GameSession{
		GameID:          "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		NarratorID:      "narrator",
		SignupChannelID: "signup",
		PhaseTime:       "19:30",
		Players:         []models.Player{{ID: "a", Role: &role}, {ID: "b"}},
		StartedAt:       &startedAt,
	}
	if err := s.PutGameSession(ctx, "guild", "group", in); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetGameSession(ctx, "guild", "group")
	if err != nil {
		t.Fatal(err)
	}
	if got.GameID != in.GameID || got.NarratorID != in.NarratorID || got.PhaseTime != in.PhaseTime {
		t.Fatalf("session fields lost: %+v", got)
	}
	if len(got.Players) != 2 || got.Players[0].Role == nil || got.Players[0].Role.Title != "Sheriff" {
		t.Fatalf("players lost: %+v", got.Players)
	}
	if got.Players[1].Role != nil {
		t.Fatal("unassigned player grew a role")
	}
	if got.StartedAt == nil || !got.StartedAt.Equal(startedAt) {
		t.Fatalf("started timestamp lost: %v", got.StartedAt)
	}
}

func TestSessionsIsolatedByGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutGameSession(ctx, "guild", "group-a", models.GameSession{NarratorID: "alice"}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutGameSession(ctx, "guild", "group-b", models.GameSession{NarratorID: "bob"}); err != nil {
		t.Fatal(err)
	}

	a, err := s.GetGameSession(ctx, "guild", "group-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.GetGameSession(ctx, "guild", "group-b")
	if err != nil {
		t.Fatal(err)
	}
	if a.NarratorID != "alice" || b.NarratorID != "bob" {
		t.Fatalf("sessions bled across groups: %q / %q", a.NarratorID, b.NarratorID)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}
