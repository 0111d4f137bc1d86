package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

type AssessmentService struct {
	api    AssessmentAPI
	logger *zap.Logger
}

func NewAssessmentService(assessmentAPI AssessmentAPI, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{api: assessmentAPI, logger: logger}
}

// AssessmentInput is one self-assessment as filled in the dialog.
type AssessmentInput struct {
	Mood         int     // 1..5
	SleepHours   float64 // 0..24
	SleepQuality int     // 1..5
	Notes        string
}

func (in AssessmentInput) validate() error {
	switch {
	case in.Mood < 1 || in.Mood > 5:
		return &InputError{Reason: "O humor deve estar entre 1 e 5."}
	case in.SleepHours < 0 || in.SleepHours > 24:
		return &InputError{Reason: "As horas de sono devem estar entre 0 e 24."}
	case in.SleepQuality < 1 || in.SleepQuality > 5:
		return &InputError{Reason: "A qualidade do sono deve estar entre 1 e 5."}
	}
	return nil
}

func (s *AssessmentService) Record(ctx context.Context, sess *session.Session, in AssessmentInput) error {
	if !sess.IsPatient() {
		return ErrForbidden
	}
	if err := in.validate(); err != nil {
		return err
	}
	err := s.api.RecordAssessment(ctx, sess.Token, api.AssessmentRequest{
		Mood:         in.Mood,
		SleepHours:   in.SleepHours,
		SleepQuality: in.SleepQuality,
		Notes:        strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return failure(err, "Não foi possível registrar a autoavaliação.")
	}
	s.logger.Info("Assessment recorded", zap.Int64("telegram_id", sess.TelegramID))
	return nil
}

// AssessmentHistory is a patient's assessments, newest first, with averages.
type AssessmentHistory struct {
	Items           []model.Assessment
	AvgMood         float64
	AvgSleepHours   float64
	AvgSleepQuality float64
}

// History loads a patient's assessments. Patients only see their own.
func (s *AssessmentService) History(ctx context.Context, sess *session.Session, patientID string) (*AssessmentHistory, error) {
	switch {
	case sess.IsPatient():
		patientID = sess.UserID
	case sess.IsPsychologist():
	default:
		return nil, ErrForbidden
	}

	items, err := s.api.AssessmentsByPatient(ctx, sess.Token, patientID)
	if err != nil {
		return nil, failure(err, "Não foi possível carregar as autoavaliações.")
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RecordedAt.After(items[j].RecordedAt)
	})

	h := &AssessmentHistory{Items: items}
	if n := float64(len(items)); n > 0 {
		for _, a := range items {
			h.AvgMood += float64(a.Mood)
			h.AvgSleepHours += a.SleepHours
			h.AvgSleepQuality += float64(a.SleepQuality)
		}
		h.AvgMood /= n
		h.AvgSleepHours /= n
		h.AvgSleepQuality /= n
	}
	return h, nil
}
