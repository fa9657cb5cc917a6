package game

import "github.com/emiliskiskis/mafia-bot/internal/models"

// NarratorOutcome classifies what a narrator change request should do.
type NarratorOutcome int

const (
	// NarratorAssigned means the target can be assigned directly.
	NarratorAssigned NarratorOutcome = iota
	// NarratorUnchanged means the target is already the narrator.
	NarratorUnchanged
	// NarratorNeedsConfirmation means a different narrator is set and the
	// overwrite must go through the confirmation gate.
	NarratorNeedsConfirmation
)

// NarratorPlan is the decision for one narrator change request. The command
// layer executes it: direct assignments persist immediately, confirmations
// suspend on the gate and assign in the accept branch.
type NarratorPlan struct {
	Outcome NarratorOutcome
	Current string
	Target  string
}

// PlanNarratorChange validates a narrator change and decides its transition.
// issuerHasRole reports whether the issuer holds the guild's narrator role;
// membership is resolved by the chat transport. No state is mutated here.
func PlanNarratorChange(settings models.GuildSettings, session *models.GameSession, target string, issuerHasRole bool) (NarratorPlan, error) {
	if settings.NarratorRoleID == "" {
		return NarratorPlan{}, ErrNarratorRoleUnset
	}
	if !issuerHasRole {
		return NarratorPlan{}, ErrNotAuthorized
	}
	plan := NarratorPlan{Current: session.NarratorID, Target: target}
	switch {
	case session.NarratorID == "":
		plan.Outcome = NarratorAssigned
	case session.NarratorID == target:
		plan.Outcome = NarratorUnchanged
	default:
		plan.Outcome = NarratorNeedsConfirmation
	}
	return plan, nil
}
