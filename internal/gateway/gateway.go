// Package gateway is the chat-transport collaborator: it delivers message
// and reaction events to the bot and carries replies, reactions and channel
// management back out. The game core only ever sees the Chat interface.
package gateway

import "context"

// Chat is the outbound surface the command layer talks to. Implementations
// must be safe for concurrent use; confirmation gates call into Chat from
// their own goroutines.
type Chat interface {
	// SendMessage posts to a channel and returns the new message id.
	SendMessage(ctx context.Context, channelID, content string) (string, error)

	// Reply addresses a participant in a channel.
	Reply(ctx context.Context, channelID, userID, content string) error

	// React adds an emoji reaction to a message.
	React(ctx context.Context, channelID, messageID, emoji string) error

	// DeleteMessage removes a message the bot posted.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// MemberDisplayName resolves a guild member's current display name.
	// Returns an empty string when the member cannot be resolved.
	MemberDisplayName(ctx context.Context, guildID, userID string) (string, error)

	// MemberHasRole reports whether a member holds a guild role.
	MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error)

	// MemberCanManageGuild reports whether a member may change guild-level
	// bot settings.
	MemberCanManageGuild(ctx context.Context, guildID, userID string) (bool, error)

	// RoleName resolves a guild role's name. Empty when unknown.
	RoleName(ctx context.Context, guildID, roleID string) (string, error)

	// CreateHiddenChannel creates a text channel in a channel group that only
	// the listed members (and the bot) can see. Members in readOnly can view
	// but not send.
	CreateHiddenChannel(ctx context.Context, guildID, groupID, name string, viewers, readOnly []string) (string, error)

	// DenySendMessages removes a member's permission to send in a channel.
	DenySendMessages(ctx context.Context, channelID, userID string) error
}

// EventHandler receives inbound gateway events. Handlers must not block the
// read loop; long work belongs in the dispatcher's own goroutines.
type EventHandler interface {
	HandleMessage(ctx context.Context, ev MessageEvent)
	HandleReaction(ctx context.Context, ev ReactionEvent)
}
