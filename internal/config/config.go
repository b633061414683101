// Package config loads server configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the server.
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Game   GameConfig
}

// ServerConfig holds the network listener settings.
type ServerConfig struct {
	ListenAddr string
}

// RedisConfig holds Redis-specific configuration. An empty Addr selects the
// in-memory repositories.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GameConfig holds the session engine tunables.
type GameConfig struct {
	StartRoomID string

	RegenInterval  time.Duration
	RegenThreshold int

	PersistInterval    time.Duration
	InactivityInterval time.Duration
	AfkAfter           time.Duration
	KickAfter          time.Duration

	ContinueDelay  time.Duration
	ResurrectDelay time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":4000"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Game: GameConfig{
			StartRoomID:        getEnvOrDefault("START_ROOM_ID", "village-square"),
			RegenInterval:      getEnvAsDurationOrDefault("REGEN_INTERVAL", 2*time.Second),
			RegenThreshold:     getEnvAsIntOrDefault("REGEN_THRESHOLD", 3),
			PersistInterval:    getEnvAsDurationOrDefault("PERSIST_INTERVAL", 30*time.Second),
			InactivityInterval: getEnvAsDurationOrDefault("INACTIVITY_INTERVAL", 30*time.Second),
			AfkAfter:           getEnvAsDurationOrDefault("AFK_AFTER", 5*time.Minute),
			KickAfter:          getEnvAsDurationOrDefault("KICK_AFTER", 15*time.Minute),
			ContinueDelay:      getEnvAsDurationOrDefault("CONTINUE_DELAY", 500*time.Millisecond),
			ResurrectDelay:     getEnvAsDurationOrDefault("RESURRECT_DELAY", 3*time.Second),
		},
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
