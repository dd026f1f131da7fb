package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Snapshot backends selectable via DESKCORE_SNAPSHOT_BACKEND.
const (
	SnapshotBackendNone     = "none"
	SnapshotBackendRedis    = "redis"
	SnapshotBackendPostgres = "postgres"
)

// Config aggregates runtime configuration for the desk core.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Seed     SeedConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

// AppConfig identifies the running process.
type AppConfig struct {
	Name string
	Env  string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines credential and session-token parameters.
type AuthConfig struct {
	SessionTokenSecret     string
	SessionTokenTTLMinutes int
	BcryptCost             int
}

// SeedConfig holds credentials for the accounts seeded when no
// snapshot exists. Secrets are hashed before they are stored.
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminSecret   string
	UserUsername  string
	UserEmail     string
	UserSecret    string
}

// SnapshotConfig selects the load-all/save-all backend.
type SnapshotConfig struct {
	Backend  string
	RedisKey string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// Load reads configuration from environment variables, applying
// defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := getEnv("DESKCORE_SNAPSHOT_BACKEND", SnapshotBackendNone)
	switch backend {
	case SnapshotBackendNone, SnapshotBackendRedis, SnapshotBackendPostgres:
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "deskcore"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SessionTokenSecret:     getEnv("AUTH_SESSION_TOKEN_SECRET", "dev-secret"),
			SessionTokenTTLMinutes: getEnvAsInt("AUTH_SESSION_TOKEN_TTL_MINUTES", 720),
			BcryptCost:             getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@deskcore.local"),
			AdminSecret:   getEnv("SEED_ADMIN_SECRET", "password"),
			UserUsername:  getEnv("SEED_USER_USERNAME", "user"),
			UserEmail:     getEnv("SEED_USER_EMAIL", "user@deskcore.local"),
			UserSecret:    getEnv("SEED_USER_SECRET", "password"),
		},
		Snapshot: SnapshotConfig{
			Backend:  backend,
			RedisKey: getEnv("DESKCORE_SNAPSHOT_REDIS_KEY", "deskcore:snapshot"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:      os.Getenv("POSTGRES_DSN"),
			MaxConns: int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns: int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
		},
	}

	return cfg, nil
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
