package command

import (
	"context"
	"fmt"

	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// setNarrator assigns the issuer, or a tagged member, as the session's
// narrator. The game core plans the transition; this handler executes it,
// routing overwrites of a different narrator through the confirmation gate.
func (d *Dispatcher) setNarrator(ctx context.Context, cc *Context) error {
	target := cc.Event.AuthorID
	switch len(cc.Args) {
	case 0:
	case 1:
		id, ok := parseUserMention(cc.Args[0])
		if !ok {
			return errSyntax
		}
		target = id
	default:
		return errSyntax
	}

	hasRole := false
	if cc.Settings.NarratorRoleID != "" {
		var err error
		hasRole, err = d.chat.MemberHasRole(ctx, cc.Event.GuildID, cc.Event.AuthorID, cc.Settings.NarratorRoleID)
		if err != nil {
			return err
		}
	}

	plan, err := game.PlanNarratorChange(*cc.Settings, cc.Session, target, hasRole)
	if err != nil {
		return err
	}

	assignedMsg := fmt.Sprintf("%s has been set as narrator", mentionUser(target))
	if target == cc.Event.AuthorID {
		assignedMsg = "you have been set as narrator"
	}

	switch plan.Outcome {
	case game.NarratorUnchanged:
		if target == cc.Event.AuthorID {
			cc.Reply(ctx, "you are already the narrator")
		} else {
			cc.Reply(ctx, fmt.Sprintf("%s is already the narrator", mentionUser(target)))
		}
		return nil

	case game.NarratorAssigned:
		cc.Session.NarratorID = target
		if err := cc.SaveSession(ctx); err != nil {
			return err
		}
		cc.Reply(ctx, assignedMsg)
		return nil

	case game.NarratorNeedsConfirmation:
		ev := cc.Event
		return d.gate.RequestConfirmation(ctx, confirm.Request{
			ChannelID:   ev.ChannelID,
			RequesterID: ev.AuthorID,
			Prompt:      fmt.Sprintf("%s is already the narrator. Replace them?", mentionUser(plan.Current)),
			Timeout:     d.cfg.ConfirmTimeout,
			OnAccept: func(cbCtx context.Context) {
				err := d.withSession(cbCtx, ev.GuildID, ev.GroupID, func(s *models.GameSession) error {
					s.NarratorID = target
					return nil
				})
				if err != nil {
					d.logger.Error().Err(err).Str("guild_id", ev.GuildID).Msg("narrator overwrite failed")
					d.send(cbCtx, ev.ChannelID, "something went wrong setting the narrator, try again later")
					return
				}
				d.send(cbCtx, ev.ChannelID, assignedMsg)
			},
		})
	}
	return nil
}
