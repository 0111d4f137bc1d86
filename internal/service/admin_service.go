package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

type AdminService struct {
	api    AdminAPI
	logger *zap.Logger
}

func NewAdminService(adminAPI AdminAPI, logger *zap.Logger) *AdminService {
	return &AdminService{api: adminAPI, logger: logger}
}

// Users lists every account sorted by name.
func (s *AdminService) Users(ctx context.Context, sess *session.Session) ([]model.User, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := s.api.ListUsers(ctx, sess.Token)
	if err != nil {
		return nil, failure(err, "Não foi possível carregar os usuários.")
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
	return users, nil
}

// SetActive activates or deactivates an account. Admins cannot deactivate themselves.
func (s *AdminService) SetActive(ctx context.Context, sess *session.Session, userID string, active bool) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if userID == sess.UserID && !active {
		return &InputError{Reason: "Você não pode desativar a própria conta."}
	}
	if err := s.api.SetUserActive(ctx, sess.Token, userID, active); err != nil {
		return failure(err, "Não foi possível atualizar o usuário.")
	}
	s.logger.Info("User status changed",
		zap.Int64("telegram_id", sess.TelegramID),
		zap.String("user_id", userID),
		zap.Bool("active", active))
	return nil
}
