package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

func newAppointmentService(f *fakeAPI) *AppointmentService {
	s := NewAppointmentService(f, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestBook_PatientWithTwoPsychologists(t *testing.T) {
	f := newFakeAPI()
	f.links = []model.CareLink{
		{ID: "l1", PatientID: "pat1", PsychologistID: "A", PsychologistName: "Dra. Ana", Status: model.CareLinkActive},
		{ID: "l2", PatientID: "pat1", PsychologistID: "B", PsychologistName: "Dr. Bruno", Status: model.CareLinkActive},
	}
	f.onCreate = func(req api.CreateAppointmentRequest) {
		at, _ := time.Parse("2006-01-02T15:04:05.000Z", req.DateTime)
		f.appointments["patient:pat1"] = append(f.appointments["patient:pat1"], model.Appointment{
			ID: "new", PatientID: "pat1", PsychologistID: req.PsychologistID, DateTime: at,
			Status: model.ParseAppointmentStatus(""),
		})
	}
	svc := newAppointmentService(f)
	sess := patientSession()
	ctx := context.Background()

	cps := svc.Counterparties(ctx, sess)
	require.Len(t, cps, 2)

	res, err := svc.Book(ctx, sess, scheduling.Form{CounterpartyID: "A", Date: "10-05-2025", Time: "14:00"}, cps)
	require.NoError(t, err)

	assert.Equal(t, "Dra. Ana", res.CounterpartyName)
	assert.Equal(t, "10/05/2025 às 14:00", res.When())
	require.Len(t, f.created, 1)
	assert.Equal(t, api.CreateAppointmentRequest{PsychologistID: "A", DateTime: "2025-05-10T14:00:00.000Z"}, f.created[0])

	assert.Equal(t, 1, f.count("appointments_by_patient"))
	require.Len(t, res.Appointments, 1)
	assert.Equal(t, model.AppointmentScheduled, res.Appointments[0].Status)
}

func TestBook_PsychologistSendsPatientID(t *testing.T) {
	f := newFakeAPI()
	svc := newAppointmentService(f)

	_, err := svc.Book(context.Background(), psychologistSession(),
		scheduling.Form{CounterpartyID: "pat1", Date: "10/05/2025", Time: "08:30"}, nil)
	require.NoError(t, err)
	require.Len(t, f.created, 1)
	assert.Equal(t, "pat1", f.created[0].PatientID)
	assert.Empty(t, f.created[0].PsychologistID)
	assert.Equal(t, 1, f.count("appointments_by_psychologist"))
}

func TestBook_ValidationBlocksRequest(t *testing.T) {
	f := newFakeAPI()
	svc := newAppointmentService(f)

	_, err := svc.Book(context.Background(), patientSession(),
		scheduling.Form{CounterpartyID: "A", Date: "10-05-2025"}, nil)

	var verr *scheduling.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Hora"}, verr.Missing)
	assert.Empty(t, f.calls)
}

func TestBook_BackendMessageIsVerbatim(t *testing.T) {
	f := newFakeAPI()
	f.createErr = &api.Error{Status: http.StatusConflict, Message: "Horário já reservado"}
	svc := newAppointmentService(f)

	_, err := svc.Book(context.Background(), patientSession(),
		scheduling.Form{CounterpartyID: "A", Date: "10-05-2025", Time: "14:00"}, nil)

	var ferr *FailureError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "Horário já reservado", ferr.Message)
	assert.Equal(t, 0, f.count("appointments_by_patient"))
}

func TestReschedule_SendsOnlyNewInstant(t *testing.T) {
	f := newFakeAPI()
	svc := newAppointmentService(f)
	sess := patientSession()
	appt := model.Appointment{
		ID: "42", PatientID: "pat1", PsychologistID: "A", PsychologistName: "Dra. Ana",
		DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC),
	}

	form := scheduling.PrefillForm(appt, sess.Role)
	form.Time = "16:00"

	res, err := svc.Reschedule(context.Background(), sess, appt, form)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-10T16:00:00.000Z", f.updated["42"])
	assert.Equal(t, "Dra. Ana", res.CounterpartyName)
	assert.Equal(t, 1, f.count("appointments_by_patient"))
}

func TestCancel_AlwaysReloads(t *testing.T) {
	f := newFakeAPI()
	f.appointments["patient:pat1"] = []model.Appointment{
		{ID: "1", Status: model.AppointmentCancelled, DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)},
	}
	svc := newAppointmentService(f)
	ctx := context.Background()

	appts, err := svc.Cancel(ctx, patientSession(), "1")
	require.NoError(t, err)
	assert.Len(t, appts, 1)
	assert.Equal(t, 1, f.count("cancel"))
	assert.Equal(t, 1, f.count("appointments_by_patient"))

	f.cancelErr = errBoom
	_, err = svc.Cancel(ctx, patientSession(), "1")
	var ferr *FailureError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "boom", ferr.Message)
	assert.Equal(t, 2, f.count("appointments_by_patient"))
}

func TestCounterparties(t *testing.T) {
	f := newFakeAPI()
	f.links = []model.CareLink{
		{PatientID: "p1", PatientName: "Bia", Status: model.CareLinkActive},
		{PatientID: "p1", PatientName: "Bia", Status: model.CareLinkActive},
		{PatientID: "p2", PatientName: "Caio", Status: model.CareLinkInactive},
	}
	svc := newAppointmentService(f)

	cps := svc.Counterparties(context.Background(), psychologistSession())
	assert.Equal(t, []model.Counterparty{{ID: "p1", Name: "Bia"}}, cps)

	f.linksErr = errBoom
	cps = svc.Counterparties(context.Background(), psychologistSession())
	assert.NotNil(t, cps)
	assert.Empty(t, cps)
}

func TestDaySlots_UsesCounterpartyAppointments(t *testing.T) {
	f := newFakeAPI()
	f.appointments["psychologist:A"] = []model.Appointment{
		{ID: "1", DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)},
		{ID: "2", DateTime: time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), Status: model.AppointmentCancelled},
	}
	svc := newAppointmentService(f)

	slots, err := svc.DaySlots(context.Background(), patientSession(), "A", timeinput.Date{Year: 2025, Month: time.May, Day: 10})
	require.NoError(t, err)
	require.Len(t, slots, 48)

	taken := map[string]bool{}
	for _, s := range slots {
		taken[s.Time] = s.Taken
	}
	assert.True(t, taken["14:00"])
	assert.False(t, taken["14:30"])
	assert.False(t, taken["15:00"])
}

func TestList_SortedAndRoleChecked(t *testing.T) {
	f := newFakeAPI()
	f.appointments["patient:pat1"] = []model.Appointment{
		{ID: "late", DateTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "early", DateTime: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	svc := newAppointmentService(f)

	appts, err := svc.List(context.Background(), patientSession())
	require.NoError(t, err)
	assert.Equal(t, "early", appts[0].ID)

	found, err := svc.Find(context.Background(), patientSession(), "late")
	require.NoError(t, err)
	require.NotNil(t, found)

	admin := patientSession()
	admin.Role = model.RoleAdmin
	_, err = svc.List(context.Background(), admin)
	assert.ErrorIs(t, err, ErrForbidden)
}
