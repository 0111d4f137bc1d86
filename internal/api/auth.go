package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/psicocare/psicocare_bot/internal/model"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResult is the token issued by the backend plus the account it belongs to.
type LoginResult struct {
	Token string
	User  model.User
}

type loginResponse struct {
	Token   string     `json:"token"`
	Usuario userRecord `json:"usuario"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", "auth_login",
		loginRequest{Email: email, Senha: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("api: auth_login: empty token in response")
	}
	return &LoginResult{Token: resp.Token, User: resp.Usuario.toModel()}, nil
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo"`
}

type userResponse struct {
	Usuario *userRecord `json:"usuario"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var raw json.RawMessage
	body := registerRequest{
		Nome:  req.Name,
		Email: req.Email,
		Senha: req.Password,
		Tipo:  req.Role.WireName(),
	}
	if err := c.do(ctx, http.MethodPost, "/auth/registro", "", "auth_register", body, &raw); err != nil {
		return nil, err
	}
	u, err := decodeUser(raw)
	if err != nil {
		return nil, fmt.Errorf("api: decode auth_register response: %w", err)
	}
	return u, nil
}

// Me returns the account the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/usuarios/me", token, "users_me", nil, &raw); err != nil {
		return nil, err
	}
	u, err := decodeUser(raw)
	if err != nil {
		return nil, fmt.Errorf("api: decode users_me response: %w", err)
	}
	return u, nil
}

// decodeUser accepts {"usuario": {...}} or a bare user object.
func decodeUser(raw json.RawMessage) (*model.User, error) {
	if len(raw) == 0 {
		return &model.User{}, nil
	}
	var wrapped userResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Usuario != nil {
		u := wrapped.Usuario.toModel()
		return &u, nil
	}
	var bare userRecord
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	u := bare.toModel()
	return &u, nil
}
