package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/psicocare/psicocare_bot/internal/model"
)

// Store persists sessions keyed by Telegram user id. Get returns nil, nil
// when there is no record.
type Store interface {
	Get(ctx context.Context, telegramID int64) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, telegramID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGStore struct {
	db DB
}

func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

func (r *PGStore) Get(ctx context.Context, telegramID int64) (*Session, error) {
	query := `
		SELECT telegram_id, user_id, name, role, token, expires_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var (
		s         Session
		role      string
		expiresAt *time.Time
	)
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&s.TelegramID, &s.UserID, &s.Name, &role, &s.Token, &expiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	s.Role = model.ParseRole(role)
	if expiresAt != nil {
		s.ExpiresAt = expiresAt.UTC()
	}
	return &s, nil
}

func (r *PGStore) Save(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (telegram_id, user_id, name, role, token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (telegram_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			token = EXCLUDED.token,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		s.TelegramID, s.UserID, s.Name, string(s.Role), s.Token, nullableTime(s.ExpiresAt))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *PGStore) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose token expired before now.
func (r *PGStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
