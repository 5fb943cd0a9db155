package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknotify/telegram-relay-go/internal/model"
)

func newTestSession(t *testing.T, tok string, ttl time.Duration) *model.Session {
	t.Helper()
	n := model.Notification{
		Type:    model.TypeCompleted,
		Project: "demo",
		Message: "done",
	}
	return model.NewSession(n, tok, "main", time.Now(), ttl)
}

func TestFileStoreCreate(t *testing.T) {
	t.Run("writes one json file per session", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)

		sess := newTestSession(t, "AAAA1111", 24*time.Hour)
		require.NoError(t, s.Create(context.Background(), sess))

		data, err := os.ReadFile(filepath.Join(dir, sess.ID+".json"))
		require.NoError(t, err)

		var decoded model.Session
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, sess.ID, decoded.ID)
		assert.Equal(t, "AAAA1111", decoded.Token)
		assert.Equal(t, "demo", decoded.Project)
		assert.Equal(t, sess.Notification, decoded.Notification)
	})

	t.Run("fails when directory is unwritable", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)
		require.NoError(t, os.Chmod(dir, 0o500))
		defer os.Chmod(dir, 0o700)

		err = s.Create(context.Background(), newTestSession(t, "BBBB2222", 24*time.Hour))
		assert.Error(t, err)
	})
}

func TestFileStoreDelete(t *testing.T) {
	t.Run("create then delete leaves no record", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)

		sess := newTestSession(t, "CCCC3333", 24*time.Hour)
		require.NoError(t, s.Create(context.Background(), sess))
		require.NoError(t, s.Delete(context.Background(), sess.ID))

		found, err := s.FindByToken(context.Background(), "CCCC3333")
		require.NoError(t, err)
		assert.Nil(t, found)

		_, err = os.Stat(filepath.Join(dir, sess.ID+".json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a nonexistent id is not an error", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		assert.NoError(t, s.Delete(context.Background(), "no-such-session"))
	})

	t.Run("deleting one session leaves others intact", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		first := newTestSession(t, "DDDD4444", 24*time.Hour)
		second := newTestSession(t, "EEEE5555", 24*time.Hour)
		require.NoError(t, s.Create(context.Background(), first))
		require.NoError(t, s.Create(context.Background(), second))

		require.NoError(t, s.Delete(context.Background(), first.ID))

		found, err := s.FindByToken(context.Background(), "EEEE5555")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, second.ID, found.ID)
	})
}

func TestFileStoreFindByToken(t *testing.T) {
	t.Run("returns nil for unknown token", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		found, err := s.FindByToken(context.Background(), "ZZZZ9999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("finds the matching session among many", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		want := newTestSession(t, "FFFF6666", 24*time.Hour)
		require.NoError(t, s.Create(context.Background(), want))
		require.NoError(t, s.Create(context.Background(), newTestSession(t, "GGGG7777", 24*time.Hour)))
		require.NoError(t, s.Create(context.Background(), newTestSession(t, "HHHH8888", 24*time.Hour)))

		found, err := s.FindByToken(context.Background(), "FFFF6666")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, want.ID, found.ID)
	})

	t.Run("skips non-json files", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not a session"), 0o600))

		found, err := s.FindByToken(context.Background(), "AAAA0000")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestFileStoreDeleteExpired(t *testing.T) {
	t.Run("removes only expired sessions", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		expired := newTestSession(t, "IIII9999", -time.Minute)
		live := newTestSession(t, "JJJJ0000", 24*time.Hour)
		require.NoError(t, s.Create(context.Background(), expired))
		require.NoError(t, s.Create(context.Background(), live))

		removed, err := s.DeleteExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		found, err := s.FindByToken(context.Background(), "JJJJ0000")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("returns zero on empty directory", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		removed, err := s.DeleteExpired(context.Background())
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}
