package gateway

// MessageEvent is an inbound chat message. GroupID is the channel group
// (category) containing the channel, empty for ungrouped channels; game
// commands require it because it keys the game session.
type MessageEvent struct {
	MessageID string `json:"message_id"`
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	GroupID   string `json:"group_id,omitempty"`
	AuthorID  string `json:"author_id"`
	AuthorBot bool   `json:"author_bot,omitempty"`
	Content   string `json:"content"`
}

// ReactionEvent is an emoji reaction added to a message.
type ReactionEvent struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Emoji     string `json:"emoji"`
}
