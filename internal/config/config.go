package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/emiliskiskis/mafia-bot/internal/models"
)

// Config holds all configuration for the bot.
type Config struct {
	Port string
	Env  string

	// Chat gateway
	GatewayURL    string
	BotToken      string
	CommandPrefix string

	// Storage. DatabaseURL selects Postgres; when empty the bot runs on
	// SQLite at SQLitePath. RedisURL enables command rate limiting.
	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	// Game tuning
	MaxPlayers          int
	Distribution        []models.DistributionEntry
	ConfirmTimeout      time.Duration
	CommandRateLimit    int // commands per participant per minute
	TownSquareChannelID string

	// AdminTokenHash is the bcrypt hash of the admin API token. Empty
	// disables the admin endpoints.
	AdminTokenHash string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present and falls back to a
// one-player game for quick testing. In production, it panics on missing
// required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		GatewayURL:          os.Getenv("GATEWAY_URL"),
		BotToken:            os.Getenv("BOT_TOKEN"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SQLitePath:          getEnv("SQLITE_PATH", "./data/mafia.db"),
		RedisURL:            os.Getenv("REDIS_URL"),
		ConfirmTimeout:      getDuration("CONFIRM_TIMEOUT", 30*time.Second),
		CommandRateLimit:    getInt("COMMAND_RATE_LIMIT", 30),
		TownSquareChannelID: os.Getenv("TOWN_SQUARE_CHANNEL_ID"),
		AdminTokenHash:      os.Getenv("ADMIN_TOKEN_HASH"),
	}

	// Development trades the full nine-player table for a one-player game so
	// a single tester can run signup through start alone.
	if cfg.IsDevelopment() {
		cfg.CommandPrefix = getEnv("COMMAND_PREFIX", ".")
		cfg.MaxPlayers = getInt("MAX_PLAYERS", 1)
		cfg.Distribution = getDistribution("ROLE_DISTRIBUTION", []models.DistributionEntry{
			{Faction: models.FactionTown, Count: 1},
		})
	} else {
		cfg.CommandPrefix = getEnv("COMMAND_PREFIX", "mafia ")
		cfg.MaxPlayers = getInt("MAX_PLAYERS", 9)
		cfg.Distribution = getDistribution("ROLE_DISTRIBUTION", []models.DistributionEntry{
			{Faction: models.FactionTown, Count: 4},
			{Faction: models.FactionMafia, Count: 3},
			{Faction: models.FactionNeutral, Count: 2},
		})
	}

	if cfg.Env == "production" {
		if cfg.GatewayURL == "" {
			panic("GATEWAY_URL is required in production")
		}
		if cfg.BotToken == "" {
			panic("BOT_TOKEN is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Sprintf("%s must be a duration, got %q", key, value))
	}
	return d
}

// getDistribution parses a faction distribution like "town:4,mafia:3,neutral:2".
func getDistribution(key string, defaultValue []models.DistributionEntry) []models.DistributionEntry {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var dist []models.DistributionEntry
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		faction, count, ok := strings.Cut(part, ":")
		if !ok {
			panic(fmt.Sprintf("%s entry %q must look like faction:count", key, part))
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			panic(fmt.Sprintf("%s entry %q has a bad count", key, part))
		}
		f := models.Faction(strings.TrimSpace(faction))
		if !f.Valid() {
			panic(fmt.Sprintf("%s entry %q names an unknown faction", key, part))
		}
		dist = append(dist, models.DistributionEntry{Faction: f, Count: n})
	}
	if len(dist) == 0 {
		return defaultValue
	}
	return dist
}
