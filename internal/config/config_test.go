package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("Destination prefers group chat", func(t *testing.T) {
		cfg := &Config{ChatID: "personal", GroupChatID: "group"}
		assert.Equal(t, "group", cfg.Destination())
	})

	t.Run("Destination falls back to personal chat", func(t *testing.T) {
		cfg := &Config{ChatID: "personal"}
		assert.Equal(t, "personal", cfg.Destination())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BotToken:     "123:abc",
			ChatID:       "42",
			SessionStore: StoreFile,
		}
	}

	t.Run("accepts a complete file-store config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects missing bot token", func(t *testing.T) {
		cfg := valid()
		cfg.BotToken = ""
		assert.ErrorContains(t, cfg.Validate(), "TELEGRAM_BOT_TOKEN")
	})

	t.Run("rejects missing destinations", func(t *testing.T) {
		cfg := valid()
		cfg.ChatID = ""
		assert.ErrorContains(t, cfg.Validate(), "TELEGRAM_CHAT_ID")
	})

	t.Run("accepts group-only destination", func(t *testing.T) {
		cfg := valid()
		cfg.ChatID = ""
		cfg.GroupChatID = "99"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects redis store without REDIS_URL", func(t *testing.T) {
		cfg := valid()
		cfg.SessionStore = StoreRedis
		assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
	})

	t.Run("rejects postgres store without DATABASE_URL", func(t *testing.T) {
		cfg := valid()
		cfg.SessionStore = StorePostgres
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("rejects unknown store backend", func(t *testing.T) {
		cfg := valid()
		cfg.SessionStore = "etcd"
		assert.ErrorContains(t, cfg.Validate(), "SESSION_STORE")
	})
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_GROUP_CHAT_ID",
		"BOT_DISPLAY_NAME", "FORCE_IPV4", "SESSION_STORE", "SESSION_DIR", "LOG_LEVEL",
	}

	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}
		os.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8081, cfg.Port)
		assert.Equal(t, "123:abc", cfg.BotToken)
		assert.Equal(t, "Claude", cfg.BotDisplayName)
		assert.False(t, cfg.ForceIPv4)
		assert.Equal(t, StoreFile, cfg.SessionStore)
		assert.NotEmpty(t, cfg.SessionDir, "SESSION_DIR default should be derived from the home directory")
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("PORT", "9000")
		os.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		os.Setenv("TELEGRAM_GROUP_CHAT_ID", "-100200300")
		os.Setenv("FORCE_IPV4", "true")
		os.Setenv("SESSION_STORE", "redis")
		os.Setenv("SESSION_DIR", "/var/lib/tasknotify")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, "-100200300", cfg.GroupChatID)
		assert.True(t, cfg.ForceIPv4)
		assert.Equal(t, StoreRedis, cfg.SessionStore)
		assert.Equal(t, "/var/lib/tasknotify", cfg.SessionDir)
	})
}
