package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Session store backends selectable via SESSION_STORE.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"8081"`
	BotToken       string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID         string `env:"TELEGRAM_CHAT_ID"`
	GroupChatID    string `env:"TELEGRAM_GROUP_CHAT_ID"`
	BotDisplayName string `env:"BOT_DISPLAY_NAME" envDefault:"Claude"`
	ForceIPv4      bool   `env:"FORCE_IPV4" envDefault:"false"`
	SessionStore   string `env:"SESSION_STORE" envDefault:"file"`
	SessionDir     string `env:"SESSION_DIR"`
	RedisURL       string `env:"REDIS_URL"`
	DatabaseURL    string `env:"DATABASE_URL"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Destination returns the single chat the relay sends to. A configured
// group chat takes precedence over the personal chat.
func (c *Config) Destination() string {
	if c.GroupChatID != "" {
		return c.GroupChatID
	}
	return c.ChatID
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.ChatID == "" && c.GroupChatID == "" {
		return fmt.Errorf("one of TELEGRAM_CHAT_ID or TELEGRAM_GROUP_CHAT_ID is required")
	}

	switch c.SessionStore {
	case StoreFile:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be one of file, redis, postgres (got %q)", c.SessionStore)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for SESSION_DIR: %w", err)
		}
		cfg.SessionDir = filepath.Join(home, ".tasknotify", "sessions")
	}

	return &cfg, nil
}
