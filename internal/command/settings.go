package command

import (
	"context"
	"fmt"

	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// setNarratorRole binds the guild role whose holders may claim narrator.
// Requires the manage-server permission; replacing an existing binding goes
// through the confirmation gate.
func (d *Dispatcher) setNarratorRole(ctx context.Context, cc *Context) error {
	canManage, err := d.chat.MemberCanManageGuild(ctx, cc.Event.GuildID, cc.Event.AuthorID)
	if err != nil {
		return err
	}
	if !canManage {
		return game.Validationf("the command requires the manage server permission")
	}

	if len(cc.Args) != 1 {
		return errSyntax
	}
	roleID, ok := parseRoleMention(cc.Args[0])
	if !ok {
		return errSyntax
	}
	name, err := d.chat.RoleName(ctx, cc.Event.GuildID, roleID)
	if err != nil || name == "" {
		return game.Validationf("failed to retrieve role information")
	}

	current := cc.Settings.NarratorRoleID
	if current == roleID {
		cc.Reply(ctx, fmt.Sprintf("%s is already the narrator role", name))
		return nil
	}

	if current != "" {
		currentName, err := d.chat.RoleName(ctx, cc.Event.GuildID, current)
		if err != nil || currentName == "" {
			currentName = "another role"
		}
		ev := cc.Event
		return d.gate.RequestConfirmation(ctx, confirm.Request{
			ChannelID:   ev.ChannelID,
			RequesterID: ev.AuthorID,
			Prompt:      fmt.Sprintf("%s is already set as the narrator role. Replace it with %s?", currentName, name),
			Timeout:     d.cfg.ConfirmTimeout,
			OnAccept: func(cbCtx context.Context) {
				err := d.withSettings(cbCtx, ev.GuildID, func(s *models.GuildSettings) error {
					s.NarratorRoleID = roleID
					return nil
				})
				if err != nil {
					d.logger.Error().Err(err).Str("guild_id", ev.GuildID).Msg("narrator role overwrite failed")
					d.send(cbCtx, ev.ChannelID, "something went wrong setting the narrator role, try again later")
					return
				}
				d.send(cbCtx, ev.ChannelID, fmt.Sprintf("%s has been set as the narrator role", name))
			},
		})
	}

	cc.Settings.NarratorRoleID = roleID
	if err := cc.SaveSettings(ctx); err != nil {
		return err
	}
	cc.Reply(ctx, fmt.Sprintf("%s has been set as the narrator role", name))
	return nil
}

// setSignupChannel designates the issuing channel as the session's signup
// channel. Narrator-role holders only; replacing a different existing channel
// is confirmation-gated.
func (d *Dispatcher) setSignupChannel(ctx context.Context, cc *Context) error {
	if cc.Settings.NarratorRoleID == "" {
		return game.ErrNarratorRoleUnset
	}
	hasRole, err := d.chat.MemberHasRole(ctx, cc.Event.GuildID, cc.Event.AuthorID, cc.Settings.NarratorRoleID)
	if err != nil {
		return err
	}
	if !hasRole {
		return game.Validationf("the command requires the narrator role")
	}

	current := cc.Session.SignupChannelID
	if current == cc.Event.ChannelID {
		cc.Reply(ctx, "this channel is already the signup channel")
		return nil
	}

	if current != "" {
		ev := cc.Event
		return d.gate.RequestConfirmation(ctx, confirm.Request{
			ChannelID:   ev.ChannelID,
			RequesterID: ev.AuthorID,
			Prompt:      fmt.Sprintf("%s is already the signup channel. Replace it with %s?", mentionChannel(current), mentionChannel(ev.ChannelID)),
			Timeout:     d.cfg.ConfirmTimeout,
			OnAccept: func(cbCtx context.Context) {
				err := d.withSession(cbCtx, ev.GuildID, ev.GroupID, func(s *models.GameSession) error {
					s.SignupChannelID = ev.ChannelID
					return nil
				})
				if err != nil {
					d.logger.Error().Err(err).Str("guild_id", ev.GuildID).Msg("signup channel overwrite failed")
					d.send(cbCtx, ev.ChannelID, "something went wrong setting the signup channel, try again later")
					return
				}
				d.send(cbCtx, ev.ChannelID, "this channel has been set as the signup channel")
			},
		})
	}

	cc.Session.SignupChannelID = cc.Event.ChannelID
	if err := cc.SaveSession(ctx); err != nil {
		return err
	}
	cc.Reply(ctx, "this channel has been set as the signup channel")
	return nil
}
