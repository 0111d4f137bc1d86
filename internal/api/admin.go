package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/psicocare/psicocare_bot/internal/model"
)

func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/usuarios", token, "admin_users_list", nil, &raw); err != nil {
		return nil, err
	}
	records, err := decodeList[userRecord](raw, "usuarios")
	if err != nil {
		return nil, fmt.Errorf("api: decode admin_users_list response: %w", err)
	}
	users := make([]model.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toModel())
	}
	return users, nil
}

type userStatusBody struct {
	Ativo bool `json:"ativo"`
}

func (c *Client) SetUserActive(ctx context.Context, token, userID string, active bool) error {
	return c.do(ctx, http.MethodPatch, "/admin/usuarios/"+url.PathEscape(userID)+"/status", token,
		"admin_users_status", userStatusBody{Ativo: active}, nil)
}
