package store

import (
	"context"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// SessionStore is the persistence contract for game state. Guild settings
// are keyed by guild id; game sessions by guild id plus channel-group id,
// one record per concurrently-running game.
//
// Reads of missing records return an empty default record, never an error:
// records are created lazily on first use. Both SQLiteStore and
// PostgresStore implement this interface.
type SessionStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Guild settings
	GetGuildSettings(ctx context.Context, guildID string) (models.GuildSettings, error)
	PutGuildSettings(ctx context.Context, guildID string, settings models.GuildSettings) error

	// Game sessions
	GetGameSession(ctx context.Context, guildID, groupID string) (models.GameSession, error)
	PutGameSession(ctx context.Context, guildID, groupID string, session models.GameSession) error
}
