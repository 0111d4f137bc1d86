package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

const maxRequestMessage = 500

type CareService struct {
	api    CareAPI
	logger *zap.Logger
}

func NewCareService(careAPI CareAPI, logger *zap.Logger) *CareService {
	return &CareService{api: careAPI, logger: logger}
}

func (s *CareService) PublicPsychologists(ctx context.Context, sess *session.Session) ([]model.User, error) {
	users, err := s.api.PublicPsychologists(ctx, sess.Token)
	if err != nil {
		return nil, failure(err, "Não foi possível carregar os psicólogos.")
	}
	return users, nil
}

// Links lists the user's care links, active ones first.
func (s *CareService) Links(ctx context.Context, sess *session.Session) ([]model.CareLink, error) {
	var (
		links []model.CareLink
		err   error
	)
	switch sess.Role {
	case model.RolePatient:
		links, err = s.api.CareLinksByPatient(ctx, sess.Token, sess.UserID)
	case model.RolePsychologist:
		links, err = s.api.CareLinksByPsychologist(ctx, sess.Token, sess.UserID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, failure(err, "Não foi possível carregar os atendimentos.")
	}

	active := make([]model.CareLink, 0, len(links))
	var inactive []model.CareLink
	for _, l := range links {
		if l.IsActive() {
			active = append(active, l)
		} else {
			inactive = append(inactive, l)
		}
	}
	return append(active, inactive...), nil
}

// RequestCare sends a patient's request to a psychologist. message is optional.
func (s *CareService) RequestCare(ctx context.Context, sess *session.Session, psychologistID, message string) error {
	if !sess.IsPatient() {
		return ErrForbidden
	}
	message = strings.TrimSpace(message)
	if len([]rune(message)) > maxRequestMessage {
		return &InputError{Reason: "A mensagem deve ter no máximo 500 caracteres."}
	}
	if err := s.api.RequestCare(ctx, sess.Token, psychologistID, message); err != nil {
		return failure(err, "Não foi possível enviar a solicitação.")
	}
	s.logger.Info("Care requested",
		zap.Int64("telegram_id", sess.TelegramID),
		zap.String("psychologist_id", psychologistID))
	return nil
}

// PendingRequests lists requests still waiting for the psychologist's answer.
func (s *CareService) PendingRequests(ctx context.Context, sess *session.Session) ([]model.CareRequest, error) {
	if !sess.IsPsychologist() {
		return nil, ErrForbidden
	}
	reqs, err := s.api.PendingRequests(ctx, sess.Token)
	if err != nil {
		return nil, failure(err, "Não foi possível carregar as solicitações.")
	}
	pending := reqs[:0]
	for _, r := range reqs {
		if r.IsPending() {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (s *CareService) AcceptRequest(ctx context.Context, sess *session.Session, requestID string) error {
	if !sess.IsPsychologist() {
		return ErrForbidden
	}
	if err := s.api.AcceptRequest(ctx, sess.Token, requestID); err != nil {
		return failure(err, "Não foi possível aceitar a solicitação.")
	}
	s.logger.Info("Care request accepted", zap.Int64("telegram_id", sess.TelegramID), zap.String("request_id", requestID))
	return nil
}

func (s *CareService) RejectRequest(ctx context.Context, sess *session.Session, requestID string) error {
	if !sess.IsPsychologist() {
		return ErrForbidden
	}
	if err := s.api.RejectRequest(ctx, sess.Token, requestID); err != nil {
		return failure(err, "Não foi possível recusar a solicitação.")
	}
	s.logger.Info("Care request rejected", zap.Int64("telegram_id", sess.TelegramID), zap.String("request_id", requestID))
	return nil
}

func (s *CareService) EndLink(ctx context.Context, sess *session.Session, linkID string) error {
	if sess.IsAdmin() {
		return ErrForbidden
	}
	if err := s.api.EndCareLink(ctx, sess.Token, linkID); err != nil {
		return failure(err, "Não foi possível encerrar o atendimento.")
	}
	s.logger.Info("Care link ended", zap.Int64("telegram_id", sess.TelegramID), zap.String("link_id", linkID))
	return nil
}
