package command

import (
	"context"
	"fmt"

	"github.com/emiliskiskis/mafia-bot/internal/game"
)

// Narrator-only night actions. Each targets a roster member by mention and
// rejects anyone not in the game before doing anything external.

func (d *Dispatcher) investigate(ctx context.Context, cc *Context) error {
	if err := requireNarrator(cc); err != nil {
		return err
	}
	target, err := targetPlayer(cc)
	if err != nil {
		return err
	}

	p := cc.Session.Players[cc.Session.PlayerIndex(target)]
	if p.Role == nil {
		return game.ErrGameNotStarted
	}
	result, known := game.InvestigationResult(p.Role.Title)
	if !known {
		result = "inconclusive"
	}
	cc.Reply(ctx, fmt.Sprintf("investigation result: %s", result))
	return nil
}

func (d *Dispatcher) blackmail(ctx context.Context, cc *Context) error {
	if err := requireNarrator(cc); err != nil {
		return err
	}
	target, err := targetPlayer(cc)
	if err != nil {
		return err
	}

	if d.cfg.TownSquareChannelID == "" {
		return game.Validationf("no town square channel is configured")
	}
	if err := d.chat.DenySendMessages(ctx, d.cfg.TownSquareChannelID, target); err != nil {
		return err
	}
	cc.Reply(ctx, fmt.Sprintf("%s cannot speak in the town square today", mentionUser(target)))
	return nil
}

func (d *Dispatcher) ventriloquist(ctx context.Context, cc *Context) error {
	if err := requireNarrator(cc); err != nil {
		return err
	}
	if len(cc.Args) != 2 {
		return errSyntax
	}
	ventID, ok := parseUserMention(cc.Args[0])
	if !ok {
		return errSyntax
	}
	puppetID, ok := parseUserMention(cc.Args[1])
	if !ok {
		return errSyntax
	}
	if !cc.Session.HasPlayer(ventID) || !cc.Session.HasPlayer(puppetID) {
		return game.ErrNotInGame
	}

	ev := cc.Event
	if err := d.relay.StartVentriloquy(ctx, ev.GuildID, ev.GroupID, cc.Session.NarratorID, ventID, puppetID); err != nil {
		return err
	}
	cc.Reply(ctx, "ventriloquist channels are up")
	return nil
}

// targetPlayer parses the single-mention argument shared by the night
// actions and checks roster membership.
func targetPlayer(cc *Context) (string, error) {
	if len(cc.Args) != 1 {
		return "", errSyntax
	}
	id, ok := parseUserMention(cc.Args[0])
	if !ok {
		return "", errSyntax
	}
	if !cc.Session.HasPlayer(id) {
		return "", game.ErrNotInGame
	}
	return id, nil
}
