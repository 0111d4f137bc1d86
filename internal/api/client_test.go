package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicocare/psicocare_bot/internal/model"
)

type fakeRecorder struct {
	mu   sync.Mutex
	seen []string
}

func (r *fakeRecorder) ObserveAPIRequest(endpoint, status string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, endpoint+" "+status)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/"}, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestLogin_SendsCredentialsWithoutAuthHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "segredo", body["senha"])

		_, _ = io.WriteString(w, `{"token":"tok","usuario":{"id":7,"nome":"Ana","tipo":"paciente"}}`)
	})

	res, err := c.Login(context.Background(), "ana@example.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "7", res.User.ID)
	assert.Equal(t, model.RolePatient, res.User.Role)
	assert.True(t, res.User.Active)
}

func TestAuthenticatedCall_SetsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/consultas/psicologo/p1", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	})

	appts, err := c.AppointmentsByPsychologist(context.Background(), "abc", "p1")
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestErrorShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"erro field", http.StatusConflict, `{"erro":"Horário já ocupado"}`, "Horário já ocupado"},
		{"message field", http.StatusBadRequest, `{"message":"Dados inválidos"}`, "Dados inválidos"},
		{"erro wins over message", http.StatusBadRequest, `{"erro":"A","message":"B"}`, "A"},
		{"plain text", http.StatusInternalServerError, "falha interna", "falha interna"},
		{"empty body", http.StatusNotFound, "", "Not Found"},
		{"unknown json", http.StatusForbidden, `{"detail":"x"}`, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := c.CancelAppointment(context.Background(), "t", "1")
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.True(t, IsStatus(err, tt.status))
			assert.Equal(t, tt.want, Message(err, "fallback"))
		})
	}
}

func TestMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "fb", Message(nil, "fb"))

	wrapped := errors.New("dial tcp: connection refused")
	err := errorsJoinLike(wrapped)
	assert.Equal(t, "dial tcp: connection refused", Message(err, "fb"))
}

func errorsJoinLike(inner error) error {
	return &wrapErr{msg: "api: x: " + inner.Error(), inner: inner}
}

type wrapErr struct {
	msg   string
	inner error
}

func (w *wrapErr) Error() string { return w.msg }
func (w *wrapErr) Unwrap() error { return w.inner }

func TestTransportError_IsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	rec := &fakeRecorder{}
	c, err := New(Config{BaseURL: url}, WithMetrics(rec))
	require.NoError(t, err)

	err = c.CancelAppointment(context.Background(), "t", "1")
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.NotEqual(t, "fallback", Message(err, "fallback"))
	assert.Equal(t, []string{"appointments_cancel transport_error"}, rec.seen)
}

func TestAppointments_NormalizesDateShapes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"consultas":[
			{"id":1,"paciente_id":2,"psicologo_id":3,"data_hora":"2025-05-10T14:00:00.000Z","status":"agendada"},
			{"id":"b","paciente":{"id":"2","nome":"Bia"},"psicologo":{"id":"3","nome":"Dra. Ana"},"data":"2025-05-10","hora":"15:30:00"},
			{"id":"c","data":"11-05-2025","hora":"09:00","status":"cancelada"},
			{"id":"d","data_hora":"2025-05-12T08:30:00Z"},
			{"id":"bad","data":"amanhã"}
		]}`)
	})

	appts, err := c.AppointmentsByPatient(context.Background(), "t", "2")
	require.NoError(t, err)
	require.Len(t, appts, 4)

	assert.Equal(t, time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), appts[0].DateTime)
	assert.Equal(t, "1", appts[0].ID)
	assert.Equal(t, "3", appts[0].PsychologistID)
	assert.False(t, appts[0].IsCancelled())

	assert.Equal(t, time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC), appts[1].DateTime)
	assert.Equal(t, "Dra. Ana", appts[1].PsychologistName)
	assert.Equal(t, "Bia", appts[1].PatientName)

	assert.Equal(t, time.Date(2025, 5, 11, 9, 0, 0, 0, time.UTC), appts[2].DateTime)
	assert.True(t, appts[2].IsCancelled())

	assert.Equal(t, time.Date(2025, 5, 12, 8, 30, 0, 0, time.UTC), appts[3].DateTime)
}

func TestCreateAppointment_SendsOnlyOneCounterparty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/consultas", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"psicologo_id": "A",
			"data_hora":    "2025-05-10T14:00:00.000Z",
		}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"consulta":{"id":9,"psicologo_id":"A","data_hora":"2025-05-10T14:00:00.000Z"}}`)
	})

	a, err := c.CreateAppointment(context.Background(), "t", CreateAppointmentRequest{
		PsychologistID: "A",
		DateTime:       "2025-05-10T14:00:00.000Z",
	})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "9", a.ID)
}

func TestUpdateAppointment_EmptyBodyIsOK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/consultas/42", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"data_hora": "2025-05-10T16:00:00.000Z"}, body)
		w.WriteHeader(http.StatusNoContent)
	})

	a, err := c.UpdateAppointment(context.Background(), "t", "42", "2025-05-10T16:00:00.000Z")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestAppointmentWrites_UnreadableSuccessBodyIsOK(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"json string", http.StatusCreated, `"Consulta criada"`},
		{"json array", http.StatusCreated, `[]`},
		{"plain text", http.StatusOK, "ok"},
		{"record without id", http.StatusOK, `{"mensagem":"Consulta atualizada"}`},
		{"record with bad date", http.StatusCreated, `{"consulta":{"id":3,"data_hora":"amanhã"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			ctx := context.Background()

			a, err := c.CreateAppointment(ctx, "t", CreateAppointmentRequest{
				PsychologistID: "p1",
				DateTime:       "2025-05-10T14:00:00.000Z",
			})
			require.NoError(t, err)
			assert.Nil(t, a)

			a, err = c.UpdateAppointment(ctx, "t", "42", "2025-05-10T16:00:00.000Z")
			require.NoError(t, err)
			assert.Nil(t, a)
		})
	}
}

func TestSessionNotes_TolerateTimestampShapes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/consultas/7/anotacoes", r.URL.Path)
		_, _ = io.WriteString(w, `{"anotacoes":[
			{"id":1,"consulta_id":7,"conteudo":"a","criado_em":"2025-05-10 14:00:00"},
			{"id":2,"consulta_id":7,"conteudo":"b","criado_em":"2025-05-11T09:30:00Z"},
			{"id":3,"consulta_id":7,"conteudo":"c","criado_em":"ontem"},
			{"id":4,"consulta_id":7,"conteudo":"d","criado_em":null},
			{"id":5,"consulta_id":7,"conteudo":"e","criado_em":"12/05/2025"}]}`)
	})

	notes, err := c.SessionNotes(context.Background(), "t", "7")
	require.NoError(t, err)
	require.Len(t, notes, 5)
	assert.Equal(t, time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), notes[0].CreatedAt)
	assert.Equal(t, time.Date(2025, 5, 11, 9, 30, 0, 0, time.UTC), notes[1].CreatedAt)
	assert.True(t, notes[2].CreatedAt.IsZero())
	assert.True(t, notes[3].CreatedAt.IsZero())
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), notes[4].CreatedAt)
}

func TestCareRequests_BadTimestampKeepsList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":5,"paciente_nome":"Bia","status":"pendente","criado_em":"2025-05-10 14:00:00"},
			{"id":6,"paciente_nome":"Caio","status":"pendente","criado_em":"???"}]`)
	})

	reqs, err := c.PendingRequests(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), reqs[0].CreatedAt)
	assert.True(t, reqs[1].CreatedAt.IsZero())
}

func TestCareEndpoints(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/atendimentos/paciente/u1":
			_, _ = io.WriteString(w, `[{"id":1,"psicologo":{"id":"A","nome":"Dra. Ana"},"paciente_id":"u1","status":"ativo"},
				{"id":2,"psicologo_id":"B","psicologo_nome":"Dr. Bruno","status":"encerrado"}]`)
		case "/atendimentos/solicitacoes":
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `[{"id":5,"paciente_nome":"Bia","mensagem":"Olá","status":"pendente"}]`)
				return
			}
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	links, err := c.CareLinksByPatient(ctx, "t", "u1")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.True(t, links[0].IsActive())
	assert.Equal(t, "Dra. Ana", links[0].PsychologistName)
	assert.False(t, links[1].IsActive())

	reqs, err := c.PendingRequests(ctx, "t")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].IsPending())

	require.NoError(t, c.RequestCare(ctx, "t", "A", "Oi"))
	require.NoError(t, c.AcceptRequest(ctx, "t", "5"))
	require.NoError(t, c.RejectRequest(ctx, "t", "6"))
	require.NoError(t, c.EndCareLink(ctx, "t", "1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /atendimentos/paciente/u1",
		"GET /atendimentos/solicitacoes",
		"POST /atendimentos/solicitacoes",
		"PATCH /atendimentos/solicitacoes/5/aceitar",
		"PATCH /atendimentos/solicitacoes/6/recusar",
		"PATCH /atendimentos/1/encerrar",
	}, calls)
}

func TestAdmin_SetUserActive(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/usuarios/3/status", r.URL.Path)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]bool{"ativo": false}, body)
	})

	require.NoError(t, c.SetUserActive(context.Background(), "t", "3", false))
}

func TestRecorderSeesStatus(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"u","nome":"Ana","tipo":"admin","ativo":true}`)
	}, WithMetrics(rec))

	u, err := c.Me(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, []string{"users_me 200"}, rec.seen)
}
