package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/psicocare/psicocare_bot/internal/model"
)

// AssessmentRequest is one mood/sleep self-assessment.
type AssessmentRequest struct {
	Mood         int
	SleepHours   float64
	SleepQuality int
	Notes        string
}

type assessmentBody struct {
	Humor         int     `json:"humor"`
	HorasSono     float64 `json:"horas_sono"`
	QualidadeSono int     `json:"qualidade_sono"`
	Observacoes   string  `json:"observacoes,omitempty"`
}

func (c *Client) RecordAssessment(ctx context.Context, token string, req AssessmentRequest) error {
	body := assessmentBody{
		Humor:         req.Mood,
		HorasSono:     req.SleepHours,
		QualidadeSono: req.SleepQuality,
		Observacoes:   req.Notes,
	}
	return c.do(ctx, http.MethodPost, "/autoavaliacoes", token, "assessments_create", body, nil)
}

func (c *Client) AssessmentsByPatient(ctx context.Context, token, patientID string) ([]model.Assessment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/autoavaliacoes/paciente/"+url.PathEscape(patientID), token,
		"assessments_by_patient", nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[assessmentRecord](raw, "autoavaliacoes")
	if err != nil {
		return nil, fmt.Errorf("api: decode assessments_by_patient response: %w", err)
	}
	out := make([]model.Assessment, 0, len(records))
	for _, r := range records {
		out = append(out, r.toModel())
	}
	return out, nil
}

type noteBody struct {
	Conteudo string `json:"conteudo"`
}

func (c *Client) AddSessionNote(ctx context.Context, token, appointmentID, content string) error {
	return c.do(ctx, http.MethodPost, "/consultas/"+url.PathEscape(appointmentID)+"/anotacoes", token,
		"notes_create", noteBody{Conteudo: content}, nil)
}

func (c *Client) SessionNotes(ctx context.Context, token, appointmentID string) ([]model.SessionNote, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/consultas/"+url.PathEscape(appointmentID)+"/anotacoes", token,
		"notes_list", nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[noteRecord](raw, "anotacoes")
	if err != nil {
		return nil, fmt.Errorf("api: decode notes_list response: %w", err)
	}
	out := make([]model.SessionNote, 0, len(records))
	for _, r := range records {
		out = append(out, r.toModel())
	}
	return out, nil
}
