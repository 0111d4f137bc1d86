package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

const (
	loginBurst    = 5
	loginInterval = 10 * time.Second
)

type AccountService struct {
	api      AuthAPI
	sessions Sessions
	logger   *zap.Logger

	now      func() time.Time

	mu       sync.Mutex
	limiters map[int64]*loginLimiter
}

type loginLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

func NewAccountService(authAPI AuthAPI, sessions Sessions, logger *zap.Logger) *AccountService {
	return &AccountService{
		api:      authAPI,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		limiters: make(map[int64]*loginLimiter),
	}
}

func (s *AccountService) allowLogin(telegramID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	l, ok := s.limiters[telegramID]
	if !ok {
		l = &loginLimiter{Limiter: rate.NewLimiter(rate.Every(loginInterval), loginBurst)}
		s.limiters[telegramID] = l
	}
	l.lastSeen = now
	return l.AllowN(now, 1)
}

// PruneLimiters drops login limiters idle long enough to have refilled.
func (s *AccountService) PruneLimiters(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idle := loginInterval * loginBurst
	n := 0
	for id, l := range s.limiters {
		if now.Sub(l.lastSeen) >= idle {
			delete(s.limiters, id)
			n++
		}
	}
	return n
}

// Login authenticates against the backend and stores the session for the Telegram user.
func (s *AccountService) Login(ctx context.Context, telegramID int64, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !s.allowLogin(telegramID) {
		s.logger.Warn("Login throttled", zap.Int64("telegram_id", telegramID))
		return nil, ErrTooManyAttempts
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("Login rejected", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return nil, failure(err, "Não foi possível entrar. Verifique seus dados.")
	}

	sess, err := session.FromToken(telegramID, res.Token, res.User)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if err := s.sessions.Login(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Register creates a patient or psychologist account. Admins are provisioned by the backend.
func (s *AccountService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if role != model.RolePatient && role != model.RolePsychologist {
		return nil, ErrInvalidRole
	}
	if !strings.Contains(email, "@") {
		return nil, &InputError{Reason: "E-mail inválido."}
	}
	if len([]rune(password)) < 6 {
		return nil, &InputError{Reason: "A senha deve ter pelo menos 6 caracteres."}
	}

	u, err := s.api.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password, Role: role})
	if err != nil {
		return nil, failure(err, "Não foi possível concluir o cadastro.")
	}
	s.logger.Info("Account registered", zap.String("email", email), zap.String("role", string(role)))
	return u, nil
}

func (s *AccountService) Logout(ctx context.Context, telegramID int64) error {
	return s.sessions.Logout(ctx, telegramID)
}

// Current returns the stored session, or session.ErrNoSession / session.ErrExpired.
func (s *AccountService) Current(ctx context.Context, telegramID int64) (*session.Session, error) {
	return s.sessions.Load(ctx, telegramID)
}
