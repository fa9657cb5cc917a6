package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// SQLiteStore handles SQLite database operations. Records are stored as JSON
// payloads keyed by guild (settings) or guild plus channel group (sessions).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/mafia.db".
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/mafia.db"
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
		dbPath += "?_journal_mode=WAL&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection; the pool must not open a
	// second one.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS game_sessions (
		guild_id TEXT NOT NULL,
		group_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (guild_id, group_id)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetGuildSettings retrieves guild settings, or an empty record if none exist.
func (s *SQLiteStore) GetGuildSettings(ctx context.Context, guildID string) (models.GuildSettings, error) {
	var settings models.GuildSettings
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM guild_settings WHERE guild_id = ?
	`, guildID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings, nil
		}
		return settings, err
	}
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return settings, fmt.Errorf("decode guild settings %s: %w", guildID, err)
	}
	return settings, nil
}

// PutGuildSettings persists guild settings, overwriting any existing record.
func (s *SQLiteStore) PutGuildSettings(ctx context.Context, guildID string, settings models.GuildSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode guild settings %s: %w", guildID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO guild_settings (guild_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, guildID, string(payload), time.Now().UTC())
	return err
}

// GetGameSession retrieves a game session, or an empty record if none exists.
func (s *SQLiteStore) GetGameSession(ctx context.Context, guildID, groupID string) (models.GameSession, error) {
	var session models.GameSession
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM game_sessions WHERE guild_id = ? AND group_id = ?
	`, guildID, groupID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session, nil
		}
		return session, err
	}
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return session, fmt.Errorf("decode game session %s/%s: %w", guildID, groupID, err)
	}
	return session, nil
}

// PutGameSession persists a game session, overwriting any existing record.
func (s *SQLiteStore) PutGameSession(ctx context.Context, guildID, groupID string, session models.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode game session %s/%s: %w", guildID, groupID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_sessions (guild_id, group_id, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (guild_id, group_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, guildID, groupID, string(payload), time.Now().UTC())
	return err
}
