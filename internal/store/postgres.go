package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// PostgresStore handles PostgreSQL database operations. Same keyed JSON
// payload shape as SQLiteStore; intended for deployments where the bot does
// not own its disk.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	store := &PostgresStore{pool: pool}

	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS game_sessions (
		guild_id TEXT NOT NULL,
		group_id TEXT NOT NULL,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (guild_id, group_id)
	);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetGuildSettings retrieves guild settings, or an empty record if none exist.
func (s *PostgresStore) GetGuildSettings(ctx context.Context, guildID string) (models.GuildSettings, error) {
	var settings models.GuildSettings
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM guild_settings WHERE guild_id = $1
	`, guildID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings, nil
		}
		return settings, err
	}
	if err := json.Unmarshal(payload, &settings); err != nil {
		return settings, fmt.Errorf("decode guild settings %s: %w", guildID, err)
	}
	return settings, nil
}

// PutGuildSettings persists guild settings, overwriting any existing record.
func (s *PostgresStore) PutGuildSettings(ctx context.Context, guildID string, settings models.GuildSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode guild settings %s: %w", guildID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO guild_settings (guild_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, guildID, payload, time.Now().UTC())
	return err
}

// GetGameSession retrieves a game session, or an empty record if none exists.
func (s *PostgresStore) GetGameSession(ctx context.Context, guildID, groupID string) (models.GameSession, error) {
	var session models.GameSession
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM game_sessions WHERE guild_id = $1 AND group_id = $2
	`, guildID, groupID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session, nil
		}
		return session, err
	}
	if err := json.Unmarshal(payload, &session); err != nil {
		return session, fmt.Errorf("decode game session %s/%s: %w", guildID, groupID, err)
	}
	return session, nil
}

// PutGameSession persists a game session, overwriting any existing record.
func (s *PostgresStore) PutGameSession(ctx context.Context, guildID, groupID string, session models.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode game session %s/%s: %w", guildID, groupID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_sessions (guild_id, group_id, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, group_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, guildID, groupID, payload, time.Now().UTC())
	return err
}
