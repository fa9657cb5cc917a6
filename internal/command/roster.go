package command

import (
	"context"

	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/metrics"
)

func (d *Dispatcher) help(ctx context.Context, cc *Context) error {
	cc.Reply(ctx, d.registry.Help(d.cfg.CommandPrefix))
	return nil
}

// join signs the issuer up. Outside the signup channel the command is a
// silent no-op so stray joins in unrelated channels don't spam rejections.
func (d *Dispatcher) join(ctx context.Context, cc *Context) error {
	if !cc.InSignupChannel() {
		return nil
	}
	if err := game.Join(cc.Session, d.gameCfg, cc.Event.AuthorID); err != nil {
		return err
	}
	if err := cc.SaveSession(ctx); err != nil {
		return err
	}
	metrics.Signups.WithLabelValues("join").Inc()
	cc.SendRoster(ctx, false)
	return nil
}

func (d *Dispatcher) leave(ctx context.Context, cc *Context) error {
	if !cc.InSignupChannel() {
		return game.ErrWrongChannel
	}
	if err := game.Leave(cc.Session, cc.Event.AuthorID); err != nil {
		return err
	}
	if err := cc.SaveSession(ctx); err != nil {
		return err
	}
	metrics.Signups.WithLabelValues("leave").Inc()
	cc.Reply(ctx, "you have left the game")
	cc.SendRoster(ctx, false)
	return nil
}

func (d *Dispatcher) playerList(ctx context.Context, cc *Context) error {
	if !cc.InSignupChannel() {
		return nil
	}
	cc.SendRoster(ctx, false)
	return nil
}
