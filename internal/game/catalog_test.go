package game

import (
	"testing"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

func TestDefaultDistributionMatchesMaxPlayers(t *testing.T) {
	if total := models.DistributionTotal(DefaultDistribution); total != DefaultMaxPlayers {
		t.Fatalf("distribution totals %d, max players is %d", total, DefaultMaxPlayers)
	}
}

func TestDefaultCatalogCoversEveryFaction(t *testing.T) {
	for _, faction := range []models.Faction{models.FactionTown, models.FactionMafia, models.FactionNeutral} {
		if len(rolesForFaction(DefaultCatalog, faction)) == 0 {
			t.Fatalf("catalog has no %s roles", faction)
		}
	}
}

func TestInvestigationResultKnownRole(t *testing.T) {
	result, ok := InvestigationResult("Sheriff")
	if !ok || result == "" {
		t.Fatalf("expected a result for Sheriff, got %q (%v)", result, ok)
	}
}

func TestInvestigationResultUnknownRole(t *testing.T) {
	if _, ok := InvestigationResult("Barista"); ok {
		t.Fatal("expected no result for a role outside the table")
	}
}
