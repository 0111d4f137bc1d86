package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/psicocare/psicocare_bot/internal/model"
)

// PublicPsychologists lists professionals that opted into the public directory.
func (c *Client) PublicPsychologists(ctx context.Context, token string) ([]model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/psicologos/publicos", token, "psychologists_public", nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[userRecord](raw, "psicologos")
	if err != nil {
		return nil, fmt.Errorf("api: decode psychologists_public response: %w", err)
	}
	users := make([]model.User, 0, len(records))
	for _, r := range records {
		u := r.toModel()
		if u.Role == "" {
			u.Role = model.RolePsychologist
		}
		users = append(users, u)
	}
	return users, nil
}

func (c *Client) CareLinksByPatient(ctx context.Context, token, patientID string) ([]model.CareLink, error) {
	return c.listCareLinks(ctx, token, "/atendimentos/paciente/"+url.PathEscape(patientID), "care_links_by_patient")
}

func (c *Client) CareLinksByPsychologist(ctx context.Context, token, psychologistID string) ([]model.CareLink, error) {
	return c.listCareLinks(ctx, token, "/atendimentos/psicologo/"+url.PathEscape(psychologistID), "care_links_by_psychologist")
}

func (c *Client) listCareLinks(ctx context.Context, token, path, endpoint string) ([]model.CareLink, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[careLinkRecord](raw, "atendimentos")
	if err != nil {
		return nil, fmt.Errorf("api: decode %s response: %w", endpoint, err)
	}
	links := make([]model.CareLink, 0, len(records))
	for _, r := range records {
		links = append(links, r.toModel())
	}
	return links, nil
}

type careRequestBody struct {
	PsicologoID string `json:"psicologo_id"`
	Mensagem    string `json:"mensagem,omitempty"`
}

// RequestCare asks a psychologist to take the calling patient.
func (c *Client) RequestCare(ctx context.Context, token, psychologistID, message string) error {
	return c.do(ctx, http.MethodPost, "/atendimentos/solicitacoes", token, "care_request_create",
		careRequestBody{PsicologoID: psychologistID, Mensagem: message}, nil)
}

// PendingRequests lists requests addressed to the calling psychologist.
func (c *Client) PendingRequests(ctx context.Context, token string) ([]model.CareRequest, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/atendimentos/solicitacoes", token, "care_request_list", nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[careRequestRecord](raw, "solicitacoes")
	if err != nil {
		return nil, fmt.Errorf("api: decode care_request_list response: %w", err)
	}
	reqs := make([]model.CareRequest, 0, len(records))
	for _, r := range records {
		reqs = append(reqs, r.toModel())
	}
	return reqs, nil
}

func (c *Client) AcceptRequest(ctx context.Context, token, requestID string) error {
	return c.do(ctx, http.MethodPatch, "/atendimentos/solicitacoes/"+url.PathEscape(requestID)+"/aceitar", token,
		"care_request_accept", nil, nil)
}

func (c *Client) RejectRequest(ctx context.Context, token, requestID string) error {
	return c.do(ctx, http.MethodPatch, "/atendimentos/solicitacoes/"+url.PathEscape(requestID)+"/recusar", token,
		"care_request_reject", nil, nil)
}

// EndCareLink closes an active care link.
func (c *Client) EndCareLink(ctx context.Context, token, linkID string) error {
	return c.do(ctx, http.MethodPatch, "/atendimentos/"+url.PathEscape(linkID)+"/encerrar", token,
		"care_link_end", nil, nil)
}
