package service

import (
	"context"
	"errors"
	"sync"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// fakeAPI implements every backend port with canned data and a call log.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	loginResult *api.LoginResult
	loginErr    error

	appointments map[string][]model.Appointment // keyed by "patient:<id>" / "psychologist:<id>"
	links        []model.CareLink
	linksErr     error
	createErr    error
	updateErr    error
	cancelErr    error
	created      []api.CreateAppointmentRequest
	onCreate     func(req api.CreateAppointmentRequest)
	updated      map[string]string

	psychologists []model.User
	requests      []model.CareRequest
	requestErr    error

	assessments []model.Assessment
	recorded    []api.AssessmentRequest

	notes []model.SessionNote
	users []model.User
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		appointments: make(map[string][]model.Appointment),
		updated:      make(map[string]string),
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (*api.LoginResult, error) {
	f.record("login")
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) (*model.User, error) {
	f.record("register")
	return &model.User{ID: "new", Name: req.Name, Email: req.Email, Role: req.Role, Active: true}, nil
}

func (f *fakeAPI) AppointmentsByPatient(_ context.Context, _, id string) ([]model.Appointment, error) {
	f.record("appointments_by_patient")
	return append([]model.Appointment(nil), f.appointments["patient:"+id]...), nil
}

func (f *fakeAPI) AppointmentsByPsychologist(_ context.Context, _, id string) ([]model.Appointment, error) {
	f.record("appointments_by_psychologist")
	return append([]model.Appointment(nil), f.appointments["psychologist:"+id]...), nil
}

func (f *fakeAPI) CreateAppointment(_ context.Context, _ string, req api.CreateAppointmentRequest) (*model.Appointment, error) {
	f.record("create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	if f.onCreate != nil {
		f.onCreate(req)
	}
	return nil, nil
}

func (f *fakeAPI) UpdateAppointment(_ context.Context, _, id, dateTime string) (*model.Appointment, error) {
	f.record("update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated[id] = dateTime
	return nil, nil
}

func (f *fakeAPI) CancelAppointment(_ context.Context, _, _ string) error {
	f.record("cancel")
	return f.cancelErr
}

func (f *fakeAPI) CareLinksByPatient(context.Context, string, string) ([]model.CareLink, error) {
	f.record("links_by_patient")
	return f.links, f.linksErr
}

func (f *fakeAPI) CareLinksByPsychologist(context.Context, string, string) ([]model.CareLink, error) {
	f.record("links_by_psychologist")
	return f.links, f.linksErr
}

func (f *fakeAPI) PublicPsychologists(context.Context, string) ([]model.User, error) {
	f.record("public_psychologists")
	return f.psychologists, nil
}

func (f *fakeAPI) RequestCare(context.Context, string, string, string) error {
	f.record("request_care")
	return f.requestErr
}

func (f *fakeAPI) PendingRequests(context.Context, string) ([]model.CareRequest, error) {
	f.record("pending_requests")
	return append([]model.CareRequest(nil), f.requests...), nil
}

func (f *fakeAPI) AcceptRequest(context.Context, string, string) error {
	f.record("accept")
	return nil
}

func (f *fakeAPI) RejectRequest(context.Context, string, string) error {
	f.record("reject")
	return nil
}

func (f *fakeAPI) EndCareLink(context.Context, string, string) error {
	f.record("end_link")
	return nil
}

func (f *fakeAPI) RecordAssessment(_ context.Context, _ string, req api.AssessmentRequest) error {
	f.record("record_assessment")
	f.recorded = append(f.recorded, req)
	return nil
}

func (f *fakeAPI) AssessmentsByPatient(context.Context, string, string) ([]model.Assessment, error) {
	f.record("assessments")
	return append([]model.Assessment(nil), f.assessments...), nil
}

func (f *fakeAPI) AddSessionNote(context.Context, string, string, string) error {
	f.record("add_note")
	return nil
}

func (f *fakeAPI) SessionNotes(context.Context, string, string) ([]model.SessionNote, error) {
	f.record("notes")
	return f.notes, nil
}

func (f *fakeAPI) ListUsers(context.Context, string) ([]model.User, error) {
	f.record("users")
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeAPI) SetUserActive(context.Context, string, string, bool) error {
	f.record("set_active")
	return nil
}

// fakeSessions stands in for *session.Manager.
type fakeSessions struct {
	mu   sync.Mutex
	data map[int64]*session.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[int64]*session.Session)}
}

func (f *fakeSessions) Load(_ context.Context, id int64) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[id]
	if !ok {
		return nil, session.ErrNoSession
	}
	return s, nil
}

func (f *fakeSessions) Login(_ context.Context, s *session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[s.TelegramID] = s
	return nil
}

func (f *fakeSessions) Logout(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	return nil
}

var errBoom = errors.New("boom")

func patientSession() *session.Session {
	return &session.Session{TelegramID: 1, UserID: "pat1", Name: "Bia", Role: model.RolePatient, Token: "tok"}
}

func psychologistSession() *session.Session {
	return &session.Session{TelegramID: 2, UserID: "A", Name: "Dra. Ana", Role: model.RolePsychologist, Token: "tok"}
}
