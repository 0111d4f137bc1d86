package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/session"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

const (
	msgBookFailed       = "Não foi possível agendar a consulta."
	msgRescheduleFailed = "Não foi possível alterar a consulta."
	msgCancelFailed     = "Não foi possível cancelar a consulta."
)

type AppointmentService struct {
	api    AppointmentAPI
	logger *zap.Logger
	now    func() time.Time
}

func NewAppointmentService(appointmentAPI AppointmentAPI, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{api: appointmentAPI, logger: logger, now: time.Now}
}

// BookingResult is what the confirmation message is built from.
type BookingResult struct {
	CounterpartyName string
	DateTime         time.Time
	// Appointments is the list reloaded after the write; nil if the reload failed.
	Appointments []model.Appointment
}

// When renders the booked instant as "DD/MM/YYYY às HH:MM".
func (r *BookingResult) When() string {
	return scheduling.DisplayInstant(r.DateTime)
}

// Counterparties lists who the user can book with: the other side of each
// active care link. Failures degrade to an empty list.
func (s *AppointmentService) Counterparties(ctx context.Context, sess *session.Session) []model.Counterparty {
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
		return []model.Counterparty{}
	}
	if err != nil {
		s.logger.Warn("Failed to load counterparties",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.Error(err))
		return []model.Counterparty{}
	}

	seen := make(map[string]bool, len(links))
	out := make([]model.Counterparty, 0, len(links))
	for i := range links {
		if !links[i].IsActive() {
			continue
		}
		cp := links[i].Counterparty(sess.Role)
		if cp.ID == "" || seen[cp.ID] {
			continue
		}
		seen[cp.ID] = true
		out = append(out, cp)
	}
	return out
}

// List returns the user's appointments ordered by date.
func (s *AppointmentService) List(ctx context.Context, sess *session.Session) ([]model.Appointment, error) {
	var (
		appts []model.Appointment
		err   error
	)
	switch sess.Role {
	case model.RolePatient:
		appts, err = s.api.AppointmentsByPatient(ctx, sess.Token, sess.UserID)
	case model.RolePsychologist:
		appts, err = s.api.AppointmentsByPsychologist(ctx, sess.Token, sess.UserID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, failure(err, "Não foi possível carregar as consultas.")
	}
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].DateTime.Before(appts[j].DateTime)
	})
	return appts, nil
}

// DaySlots loads the counterparty's appointments and marks the day's taken slots.
func (s *AppointmentService) DaySlots(ctx context.Context, sess *session.Session, counterpartyID string, day timeinput.Date) ([]scheduling.Slot, error) {
	var (
		appts []model.Appointment
		err   error
	)
	switch sess.Role {
	case model.RolePatient:
		appts, err = s.api.AppointmentsByPsychologist(ctx, sess.Token, counterpartyID)
	case model.RolePsychologist:
		appts, err = s.api.AppointmentsByPatient(ctx, sess.Token, counterpartyID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, failure(err, "Não foi possível carregar os horários.")
	}
	return scheduling.DaySlots(appts, day), nil
}

// Book validates the form, creates the appointment and reloads the list.
// Validation problems come back as *scheduling.ValidationError and backend
// problems as *FailureError; in both cases the caller keeps the form.
func (s *AppointmentService) Book(ctx context.Context, sess *session.Session, form scheduling.Form, counterparties []model.Counterparty) (*BookingResult, error) {
	if sess.Role != model.RolePatient && sess.Role != model.RolePsychologist {
		return nil, ErrForbidden
	}
	if err := form.Validate(sess.Role, s.now()); err != nil {
		return nil, err
	}
	at, err := scheduling.ToInstant(form.Date, form.Time)
	if err != nil {
		return nil, fmt.Errorf("build instant: %w", err)
	}

	req := api.CreateAppointmentRequest{DateTime: scheduling.FormatInstant(at)}
	if sess.Role == model.RolePatient {
		req.PsychologistID = form.CounterpartyID
	} else {
		req.PatientID = form.CounterpartyID
	}

	if _, err := s.api.CreateAppointment(ctx, sess.Token, req); err != nil {
		s.logger.Info("Create appointment rejected",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.String("counterparty_id", form.CounterpartyID),
			zap.Error(err))
		return nil, failure(err, msgBookFailed)
	}

	s.logger.Info("Appointment created",
		zap.Int64("telegram_id", sess.TelegramID),
		zap.String("counterparty_id", form.CounterpartyID),
		zap.Time("at", at))

	return &BookingResult{
		CounterpartyName: counterpartyName(counterparties, form.CounterpartyID),
		DateTime:         at,
		Appointments:     s.reload(ctx, sess),
	}, nil
}

// Reschedule moves an existing appointment. Only the new instant is sent.
func (s *AppointmentService) Reschedule(ctx context.Context, sess *session.Session, appt model.Appointment, form scheduling.Form) (*BookingResult, error) {
	if form.CounterpartyID == "" {
		form.CounterpartyID = appt.CounterpartyID(sess.Role)
	}
	if err := form.Validate(sess.Role, s.now()); err != nil {
		return nil, err
	}
	at, err := scheduling.ToInstant(form.Date, form.Time)
	if err != nil {
		return nil, fmt.Errorf("build instant: %w", err)
	}

	if _, err := s.api.UpdateAppointment(ctx, sess.Token, appt.ID, scheduling.FormatInstant(at)); err != nil {
		s.logger.Info("Update appointment rejected",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.String("appointment_id", appt.ID),
			zap.Error(err))
		return nil, failure(err, msgRescheduleFailed)
	}

	s.logger.Info("Appointment rescheduled",
		zap.Int64("telegram_id", sess.TelegramID),
		zap.String("appointment_id", appt.ID),
		zap.Time("at", at))

	return &BookingResult{
		CounterpartyName: appt.CounterpartyName(sess.Role),
		DateTime:         at,
		Appointments:     s.reload(ctx, sess),
	}, nil
}

// Cancel cancels the appointment and reloads the list whether or not the
// cancel succeeded, since other actors may have changed it meanwhile.
func (s *AppointmentService) Cancel(ctx context.Context, sess *session.Session, appointmentID string) ([]model.Appointment, error) {
	cancelErr := s.api.CancelAppointment(ctx, sess.Token, appointmentID)
	if cancelErr != nil {
		s.logger.Info("Cancel appointment rejected",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.String("appointment_id", appointmentID),
			zap.Error(cancelErr))
	} else {
		s.logger.Info("Appointment cancelled",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.String("appointment_id", appointmentID))
	}

	appts, err := s.List(ctx, sess)
	if cancelErr != nil {
		return appts, failure(cancelErr, msgCancelFailed)
	}
	return appts, err
}

// Find returns one appointment of the user by id, or nil.
func (s *AppointmentService) Find(ctx context.Context, sess *session.Session, appointmentID string) (*model.Appointment, error) {
	appts, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == appointmentID {
			return &appts[i], nil
		}
	}
	return nil, nil
}

func (s *AppointmentService) reload(ctx context.Context, sess *session.Session) []model.Appointment {
	appts, err := s.List(ctx, sess)
	if err != nil {
		s.logger.Warn("Reload after write failed", zap.Int64("telegram_id", sess.TelegramID), zap.Error(err))
		return nil
	}
	return appts
}

func counterpartyName(list []model.Counterparty, id string) string {
	for _, cp := range list {
		if cp.ID == id {
			return cp.Name
		}
	}
	return ""
}
