package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Manager loads and stores the session of each Telegram user.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// Load returns the user's session, ErrNoSession when they never logged in,
// or ErrExpired after dropping a session whose token expired.
func (m *Manager) Load(ctx context.Context, telegramID int64) (*Session, error) {
	s, err := m.store.Get(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, ErrNoSession
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, telegramID); err != nil {
			m.logger.Warn("Failed to drop expired session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		return nil, ErrExpired
	}
	return s, nil
}

func (m *Manager) Login(ctx context.Context, s *Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	m.logger.Info("User logged in",
		zap.Int64("telegram_id", s.TelegramID),
		zap.String("user_id", s.UserID),
		zap.String("role", string(s.Role)))
	return nil
}

func (m *Manager) Logout(ctx context.Context, telegramID int64) error {
	if err := m.store.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	m.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Sweep deletes every expired session from the store.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}
