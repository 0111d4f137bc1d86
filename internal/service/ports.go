package service

import (
	"context"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// Interfaces over *api.Client, one per service.

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, req api.RegisterRequest) (*model.User, error)
}

type AppointmentAPI interface {
	AppointmentsByPatient(ctx context.Context, token, patientID string) ([]model.Appointment, error)
	AppointmentsByPsychologist(ctx context.Context, token, psychologistID string) ([]model.Appointment, error)
	CreateAppointment(ctx context.Context, token string, req api.CreateAppointmentRequest) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, token, appointmentID, dateTime string) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, token, appointmentID string) error
	CareLinksByPatient(ctx context.Context, token, patientID string) ([]model.CareLink, error)
	CareLinksByPsychologist(ctx context.Context, token, psychologistID string) ([]model.CareLink, error)
}

type CareAPI interface {
	PublicPsychologists(ctx context.Context, token string) ([]model.User, error)
	CareLinksByPatient(ctx context.Context, token, patientID string) ([]model.CareLink, error)
	CareLinksByPsychologist(ctx context.Context, token, psychologistID string) ([]model.CareLink, error)
	RequestCare(ctx context.Context, token, psychologistID, message string) error
	PendingRequests(ctx context.Context, token string) ([]model.CareRequest, error)
	AcceptRequest(ctx context.Context, token, requestID string) error
	RejectRequest(ctx context.Context, token, requestID string) error
	EndCareLink(ctx context.Context, token, linkID string) error
}

type AssessmentAPI interface {
	RecordAssessment(ctx context.Context, token string, req api.AssessmentRequest) error
	AssessmentsByPatient(ctx context.Context, token, patientID string) ([]model.Assessment, error)
}

type NoteAPI interface {
	AddSessionNote(ctx context.Context, token, appointmentID, content string) error
	SessionNotes(ctx context.Context, token, appointmentID string) ([]model.SessionNote, error)
}

type AdminAPI interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	SetUserActive(ctx context.Context, token, userID string, active bool) error
}

// Sessions is the part of *session.Manager the account service needs.
type Sessions interface {
	Load(ctx context.Context, telegramID int64) (*session.Session, error)
	Login(ctx context.Context, s *session.Session) error
	Logout(ctx context.Context, telegramID int64) error
}
