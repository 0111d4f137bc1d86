package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
)

type backend struct {
	createStatus int
	createBody   string

	lists   atomic.Int32
	creates atomic.Int32
	updates atomic.Int32

	mu      sync.Mutex
	putBody map[string]any
}

func (b *backend) lastPut() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.putBody
}

func (b *backend) handler(t *testing.T, day time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/consultas/paciente/u1":
			b.lists.Add(1)
			_, _ = fmt.Fprintf(w, `[{"id":"a1","psicologo_id":"p1","psicologo_nome":"Dra. Ana","paciente_id":"u1","data_hora":"%sT10:00:00.000Z","status":"agendada"}]`,
				day.Format("2006-01-02"))
		case r.Method == http.MethodPost && r.URL.Path == "/consultas":
			b.creates.Add(1)
			w.WriteHeader(b.createStatus)
			_, _ = io.WriteString(w, b.createBody)
		case r.Method == http.MethodPut && r.URL.Path == "/consultas/a1":
			b.updates.Add(1)
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			b.mu.Lock()
			b.putBody = body
			b.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newHandler(t *testing.T, be *backend, day time.Time) *callbacktypes.Handler {
	t.Helper()
	srv := httptest.NewServer(be.handler(t, day))
	t.Cleanup(srv.Close)
	client, err := api.New(api.Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return &callbacktypes.Handler{
		Appointments: service.NewAppointmentService(client, zap.NewNop()),
		StateManager: state.NewManager(),
		Logger:       zap.NewNop(),
	}
}

func patient() *session.Session {
	return &session.Session{TelegramID: 1, UserID: "u1", Name: "Bia", Role: model.RolePatient, Token: "t"}
}

func fillForm(h *callbacktypes.Handler, day time.Time) {
	h.StateManager.SetForm(1, scheduling.Form{CounterpartyID: "p1", Date: day.Format("02-01-2006"), Time: "14:00"})
	h.StateManager.SetData(1, state.KeyCounterpartyName, "Dra. Ana")
}

func TestSubmit_Book(t *testing.T) {
	day := time.Now().AddDate(0, 0, 7)

	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   string
		wantLists int32
	}{
		{
			name:      "created with record",
			status:    http.StatusCreated,
			body:      `{"consulta":{"id":"n1","psicologo_id":"p1","paciente_id":"u1","data_hora":"2030-01-01T14:00:00.000Z"}}`,
			wantLists: 1,
		},
		{
			name:      "created with plain message",
			status:    http.StatusCreated,
			body:      `"Consulta criada"`,
			wantLists: 1,
		},
		{
			name:    "slot taken",
			status:  http.StatusConflict,
			body:    `{"erro":"Horário já ocupado"}`,
			wantErr: "❌ Horário já ocupado",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := &backend{createStatus: tt.status, createBody: tt.body}
			h := newHandler(t, be, day)
			fillForm(h, day)

			res, editing, err := Submit(context.Background(), h, patient())
			assert.False(t, editing)
			assert.Equal(t, int32(1), be.creates.Load())
			assert.Equal(t, tt.wantLists, be.lists.Load())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, res)
				assert.Equal(t, tt.wantErr, common.ErrorMessage(err))
				// the form survives so the user can pick another slot
				assert.Equal(t, "p1", h.StateManager.Form(1).CounterpartyID)
				assert.Equal(t, "14:00", h.StateManager.Form(1).Time)
				assert.Equal(t, "Dra. Ana", h.StateManager.GetString(1, state.KeyCounterpartyName))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, "Dra. Ana", res.CounterpartyName)
			assert.Len(t, res.Appointments, 1)
			assert.Equal(t, scheduling.Form{}, h.StateManager.Form(1))
			assert.Empty(t, h.StateManager.GetString(1, state.KeyCounterpartyName))
		})
	}
}

func TestSubmit_RescheduleSendsOnlyInstant(t *testing.T) {
	day := time.Now().AddDate(0, 0, 7)
	be := &backend{}
	h := newHandler(t, be, day)
	h.StateManager.SetForm(1, scheduling.Form{Date: day.Format("02-01-2006"), Time: "16:30"})
	h.StateManager.SetData(1, state.KeyEditAppointment, "a1")

	res, editing, err := Submit(context.Background(), h, patient())
	require.NoError(t, err)
	assert.True(t, editing)
	require.NotNil(t, res)
	assert.Equal(t, "Dra. Ana", res.CounterpartyName)

	assert.Equal(t, int32(1), be.updates.Load())
	assert.Zero(t, be.creates.Load())
	want := time.Date(day.Year(), day.Month(), day.Day(), 16, 30, 0, 0, time.UTC)
	assert.Equal(t, map[string]any{"data_hora": scheduling.FormatInstant(want)}, be.lastPut())

	// one list for the lookup, one for the reload
	assert.Equal(t, int32(2), be.lists.Load())
	assert.Empty(t, h.StateManager.GetString(1, state.KeyEditAppointment))
	assert.Equal(t, scheduling.Form{}, h.StateManager.Form(1))
}

func TestSubmit_RescheduleUnknownAppointment(t *testing.T) {
	day := time.Now().AddDate(0, 0, 7)
	be := &backend{}
	h := newHandler(t, be, day)
	h.StateManager.SetForm(1, scheduling.Form{Date: day.Format("02-01-2006"), Time: "16:30"})
	h.StateManager.SetData(1, state.KeyEditAppointment, "missing")

	_, editing, err := Submit(context.Background(), h, patient())
	assert.True(t, editing)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, be.updates.Load())
	assert.Equal(t, "missing", h.StateManager.GetString(1, state.KeyEditAppointment))
}
