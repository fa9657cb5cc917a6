package command

import (
	"context"
	"fmt"

	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/metrics"
)

// requireNarrator rejects anyone but the session's narrator.
func requireNarrator(cc *Context) error {
	if cc.Session.NarratorID == "" {
		return game.ErrNoNarrator
	}
	if cc.Event.AuthorID != cc.Session.NarratorID {
		return game.ErrNotNarrator
	}
	return nil
}

func (d *Dispatcher) setPhaseTime(ctx context.Context, cc *Context) error {
	if err := requireNarrator(cc); err != nil {
		return err
	}
	if len(cc.Args) != 1 {
		return errSyntax
	}
	raw := cc.Args[0]
	if err := game.ValidatePhaseTime(raw); err != nil {
		return err
	}

	cc.Session.PhaseTime = raw
	if err := cc.SaveSession(ctx); err != nil {
		return err
	}

	minutes, err := game.MinutesUntilPhase(raw, d.now())
	if err != nil {
		return err
	}
	cc.Reply(ctx, fmt.Sprintf("phase time was set to %s (next phase in %s)", raw, game.FormatCountdown(minutes)))
	return nil
}

// start locks the roster and deals roles. Every precondition is checked
// before anything is emitted or mutated; the final roster goes out before the
// assignment is visible anywhere, and the manifest never reaches a player
// channel.
func (d *Dispatcher) start(ctx context.Context, cc *Context) error {
	if err := game.CanStart(cc.Session, d.gameCfg, cc.Event.AuthorID); err != nil {
		return err
	}

	resolve := cc.Resolver(ctx)
	cc.Send(ctx, cc.Session.SignupChannelID, game.FormatRoster(cc.Session, d.gameCfg, true, resolve))

	if err := game.Start(cc.Session, d.gameCfg, cc.Event.AuthorID, d.newRNG(), d.now()); err != nil {
		return err
	}
	if err := cc.SaveSession(ctx); err != nil {
		return err
	}
	metrics.GamesStarted.Inc()

	// Narrator-side record only; the public channel never sees roles.
	d.logger.Info().
		Str("game_id", cc.Session.GameID).
		Str("guild_id", cc.Event.GuildID).
		Str("group_id", cc.Event.GroupID).
		Str("manifest", game.RoleManifest(cc.Session, resolve)).
		Msg("game started")

	minutes, err := game.MinutesUntilPhase(cc.Session.PhaseTime, d.now())
	if err != nil {
		return err
	}
	cc.Send(ctx, cc.Session.SignupChannelID, fmt.Sprintf("Game started. Next phase is in %s.", game.FormatCountdown(minutes)))
	return nil
}
