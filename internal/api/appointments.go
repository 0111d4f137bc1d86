package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/psicocare/psicocare_bot/internal/model"
)

// CreateAppointmentRequest books a slot. Exactly one of PsychologistID
// (patient booking) or PatientID (psychologist booking) is set.
type CreateAppointmentRequest struct {
	PsychologistID string
	PatientID      string
	DateTime       string // 2006-01-02T15:04:05.000Z
}

type createAppointmentBody struct {
	PsicologoID string `json:"psicologo_id,omitempty"`
	PacienteID  string `json:"paciente_id,omitempty"`
	DataHora    string `json:"data_hora"`
}

type updateAppointmentBody struct {
	DataHora string `json:"data_hora"`
}

func (c *Client) AppointmentsByPatient(ctx context.Context, token, patientID string) ([]model.Appointment, error) {
	return c.listAppointments(ctx, token, "/consultas/paciente/"+url.PathEscape(patientID), "appointments_by_patient")
}

func (c *Client) AppointmentsByPsychologist(ctx context.Context, token, psychologistID string) ([]model.Appointment, error) {
	return c.listAppointments(ctx, token, "/consultas/psicologo/"+url.PathEscape(psychologistID), "appointments_by_psychologist")
}

func (c *Client) listAppointments(ctx context.Context, token, path, endpoint string) ([]model.Appointment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[appointmentRecord](raw, "consultas")
	if err != nil {
		return nil, fmt.Errorf("api: decode %s response: %w", endpoint, err)
	}

	appts := make([]model.Appointment, 0, len(records))
	for _, r := range records {
		a, err := r.toModel()
		if err != nil {
			c.logger.Sugar().Warnw("skipping appointment with unreadable date", "endpoint", endpoint, "error", err)
			continue
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// CreateAppointment books a new appointment. The returned record may be
// nil when the backend answers without a body.
func (c *Client) CreateAppointment(ctx context.Context, token string, req CreateAppointmentRequest) (*model.Appointment, error) {
	body := createAppointmentBody{
		PsicologoID: req.PsychologistID,
		PacienteID:  req.PatientID,
		DataHora:    req.DateTime,
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/consultas", token, "appointments_create", body, &raw); err != nil {
		return nil, err
	}
	return decodeAppointment(raw)
}

// UpdateAppointment moves an appointment to a new instant. Only data_hora is sent.
func (c *Client) UpdateAppointment(ctx context.Context, token, appointmentID, dateTime string) (*model.Appointment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/consultas/"+url.PathEscape(appointmentID), token,
		"appointments_update", updateAppointmentBody{DataHora: dateTime}, &raw); err != nil {
		return nil, err
	}
	return decodeAppointment(raw)
}

func (c *Client) CancelAppointment(ctx context.Context, token, appointmentID string) error {
	return c.do(ctx, http.MethodPatch, "/consultas/"+url.PathEscape(appointmentID)+"/cancelar", token,
		"appointments_cancel", nil, nil)
}

// decodeAppointment reads the record echoed by a successful write. The write
// already succeeded, so a body that is not a readable record yields nil.
func decodeAppointment(raw json.RawMessage) (*model.Appointment, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var wrapped struct {
		Consulta *appointmentRecord `json:"consulta"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, nil
	}
	rec := wrapped.Consulta
	if rec == nil {
		rec = &appointmentRecord{}
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, nil
		}
	}
	if rec.ID == "" {
		return nil, nil
	}
	a, err := rec.toModel()
	if err != nil {
		return nil, nil
	}
	return &a, nil
}
