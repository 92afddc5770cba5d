package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot.
type Config struct {
	Bot      BotConfig
	Quest    QuestConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Logger   LoggerConfig
}

// BotConfig holds Telegram transport settings.
type BotConfig struct {
	Token          string
	AdminID        int64
	Debug          bool
	PollTimeoutSec int
}

// QuestConfig describes the quest content sources.
type QuestConfig struct {
	TeamCodes  []string
	ScriptFile string
}

// StorageConfig selects the registry persistence backend.
type StorageConfig struct {
	Backend string // "file", "postgres" or "redis"
	File    string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HTTPConfig controls the optional operations HTTP server.
type HTTPConfig struct {
	Enabled bool
	Host    string
	Port    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Backend identifiers accepted by StorageConfig.Backend.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	adminID, err := strconv.ParseInt(os.Getenv("BOT_ADMIN_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BOT_ADMIN_ID: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile))
	switch backend {
	case BackendFile, BackendPostgres, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	cfg := &Config{
		Bot: BotConfig{
			Token:          token,
			AdminID:        adminID,
			Debug:          getEnvAsBool("BOT_DEBUG", false),
			PollTimeoutSec: getEnvAsInt("BOT_POLL_TIMEOUT_SECONDS", 30),
		},
		Quest: QuestConfig{
			TeamCodes:  splitCSV(getEnv("QUEST_TEAM_CODES", "9A,9B,10A,10B,10G")),
			ScriptFile: os.Getenv("QUEST_SCRIPT_FILE"),
		},
		Storage: StorageConfig{
			Backend: backend,
			File:    getEnv("STORAGE_FILE", "data.json"),
		},
		Postgres: PostgresConfig{
			DSN:      os.Getenv("POSTGRES_DSN"),
			MaxConns: int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns: int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		HTTP: HTTPConfig{
			Enabled: getEnvAsBool("HTTP_ENABLED", false),
			Host:    getEnv("HTTP_HOST", "0.0.0.0"),
			Port:    getEnv("HTTP_PORT", "8080"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if len(cfg.Quest.TeamCodes) == 0 {
		return nil, fmt.Errorf("QUEST_TEAM_CODES must name at least one team")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%s", h.Host, h.Port)
}

func splitCSV(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
