package game

import (
	"errors"
	"testing"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

func TestPlanNarratorChangeRequiresRoleBinding(t *testing.T) {
	_, err := PlanNarratorChange(models.GuildSettings{}, &models.GameSession{}, "target", true)
	if !errors.Is(err, ErrNarratorRoleUnset) {
		t.Fatalf("expected ErrNarratorRoleUnset, got %v", err)
	}
}

func TestPlanNarratorChangeRequiresRoleHolder(t *testing.T) {
	settings := models.GuildSettings{NarratorRoleID: "role"}
	_, err := PlanNarratorChange(settings, &models.GameSession{}, "target", false)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestPlanNarratorChangeAssignsWhenVacant(t *testing.T) {
	settings := models.GuildSettings{NarratorRoleID: "role"}
	plan, err := PlanNarratorChange(settings, &models.GameSession{}, "target", true)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Outcome != NarratorAssigned || plan.Target != "target" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanNarratorChangeSameNarrator(t *testing.T) {
	settings := models.GuildSettings{NarratorRoleID: "role"}
	session := &models.GameSession{NarratorID: "target"}
	plan, err := PlanNarratorChange(settings, session, "target", true)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Outcome != NarratorUnchanged {
		t.Fatalf("expected NarratorUnchanged, got %+v", plan)
	}
}

func TestPlanNarratorChangeDifferentNarratorNeedsConfirmation(t *testing.T) {
	settings := models.GuildSettings{NarratorRoleID: "role"}
	session := &models.GameSession{NarratorID: "incumbent"}
	plan, err := PlanNarratorChange(settings, session, "challenger", true)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Outcome != NarratorNeedsConfirmation || plan.Current != "incumbent" || plan.Target != "challenger" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if session.NarratorID != "incumbent" {
		t.Fatal("planning must not mutate the session")
	}
}
