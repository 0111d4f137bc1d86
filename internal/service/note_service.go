package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

const maxNoteLength = 2000

type NoteService struct {
	api    NoteAPI
	logger *zap.Logger
}

func NewNoteService(noteAPI NoteAPI, logger *zap.Logger) *NoteService {
	return &NoteService{api: noteAPI, logger: logger}
}

func (s *NoteService) Add(ctx context.Context, sess *session.Session, appointmentID, content string) error {
	if !sess.IsPsychologist() {
		return ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return &InputError{Reason: "A anotação não pode ficar vazia."}
	}
	if len([]rune(content)) > maxNoteLength {
		return &InputError{Reason: "A anotação deve ter no máximo 2000 caracteres."}
	}
	if err := s.api.AddSessionNote(ctx, sess.Token, appointmentID, content); err != nil {
		return failure(err, "Não foi possível salvar a anotação.")
	}
	s.logger.Info("Session note added",
		zap.Int64("telegram_id", sess.TelegramID),
		zap.String("appointment_id", appointmentID))
	return nil
}

func (s *NoteService) List(ctx context.Context, sess *session.Session, appointmentID string) ([]model.SessionNote, error) {
	if !sess.IsPsychologist() {
		return nil, ErrForbidden
	}
	notes, err := s.api.SessionNotes(ctx, sess.Token, appointmentID)
	if err != nil {
		return nil, failure(err, "Não foi possível carregar as anotações.")
	}
	return notes, nil
}
