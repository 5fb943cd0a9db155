package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tasknotify/telegram-relay-go/internal/config"
	"github.com/tasknotify/telegram-relay-go/internal/model"
)

// PostgresStore keeps one row per session with the full record as jsonb.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(config.DBConnMaxLifetime)

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notify_sessions (
			id         TEXT PRIMARY KEY,
			token      TEXT NOT NULL,
			expires_at BIGINT NOT NULL,
			record     JSONB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS notify_sessions_token_idx ON notify_sessions (token)
	`)
	if err != nil {
		return fmt.Errorf("ensure token index: %w", err)
	}
	return nil
}

type sessionRow struct {
	ID        string `db:"id"`
	Token     string `db:"token"`
	ExpiresAt int64  `db:"expires_at"`
	Record    []byte `db:"record"`
}

func (s *PostgresStore) Create(ctx context.Context, session *model.Session) error {
	record, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notify_sessions (id, token, expires_at, record)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.Token, session.ExpiresAt, record)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM notify_sessions WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByToken(ctx context.Context, tok string) (*model.Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, token, expires_at, record FROM notify_sessions
		WHERE token = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`, tok)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session by token: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(row.Record, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM notify_sessions WHERE expires_at < $1
	`, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
