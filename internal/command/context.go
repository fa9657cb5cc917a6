package command

import (
	"context"

	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/gateway"
	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// Context is everything one command invocation gets to work with. Settings
// and Session are loaded (and their keys locked) according to the command's
// scope; the Save closures persist whatever the handler mutated while the
// locks are still held.
type Context struct {
	Event gateway.MessageEvent
	Args  []string

	Settings *models.GuildSettings
	Session  *models.GameSession

	SaveSettings func(ctx context.Context) error
	SaveSession  func(ctx context.Context) error

	d *Dispatcher
}

// Reply addresses the issuer in the channel the command came from. Delivery
// failures are logged, not surfaced; a lost reply never fails a command that
// already persisted.
func (cc *Context) Reply(ctx context.Context, text string) {
	if err := cc.d.chat.Reply(ctx, cc.Event.ChannelID, cc.Event.AuthorID, text); err != nil {
		cc.d.logger.Warn().Err(err).Str("channel_id", cc.Event.ChannelID).Msg("reply failed")
	}
}

// Send posts to a channel, best-effort like Reply.
func (cc *Context) Send(ctx context.Context, channelID, text string) {
	if _, err := cc.d.chat.SendMessage(ctx, channelID, text); err != nil {
		cc.d.logger.Warn().Err(err).Str("channel_id", channelID).Msg("send failed")
	}
}

// InSignupChannel reports whether the command was issued in the session's
// designated signup channel. False when no signup channel is set.
func (cc *Context) InSignupChannel() bool {
	return cc.Session != nil &&
		cc.Session.SignupChannelID != "" &&
		cc.Session.SignupChannelID == cc.Event.ChannelID
}

// Resolver builds a display-name resolver over the chat transport. Lookups
// that fail resolve to an empty name; the roster renderer substitutes a
// placeholder.
func (cc *Context) Resolver(ctx context.Context) game.NameResolver {
	guildID := cc.Event.GuildID
	return func(id string) string {
		name, err := cc.d.chat.MemberDisplayName(ctx, guildID, id)
		if err != nil {
			cc.d.logger.Warn().Err(err).Str("user_id", id).Msg("display name lookup failed")
			return ""
		}
		return name
	}
}

// SendRoster posts the numbered roster to the signup channel.
func (cc *Context) SendRoster(ctx context.Context, final bool) {
	cc.Send(ctx, cc.Session.SignupChannelID, game.FormatRoster(cc.Session, cc.d.gameCfg, final, cc.Resolver(ctx)))
}
