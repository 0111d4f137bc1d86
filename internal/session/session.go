// Package session holds the authentication context of each Telegram user:
// the backend token, the user's id and role, and where that is persisted.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/psicocare/psicocare_bot/internal/model"
)

var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
	ErrBadToken  = errors.New("malformed token")
)

// Session is one logged-in Telegram user.
type Session struct {
	TelegramID int64
	UserID     string
	Name       string
	Role       model.Role
	Token      string
	ExpiresAt  time.Time // zero when the token carries no exp
}

// Expired reports whether the token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) IsPatient() bool      { return s.Role == model.RolePatient }
func (s *Session) IsPsychologist() bool { return s.Role == model.RolePsychologist }
func (s *Session) IsAdmin() bool        { return s.Role == model.RoleAdmin }

// claims are the fields the backend puts in its tokens. Ids may be numbers.
type claims struct {
	UserID any    `json:"id"`
	Tipo   string `json:"tipo"`
	Role   string `json:"role"`
	Nome   string `json:"nome"`
	jwt.RegisteredClaims
}

// FromToken builds a Session from a login response. The token is decoded
// without verification since only the backend holds the signing key; the
// claims just spare a round trip. user fills whatever the claims lack.
func FromToken(telegramID int64, token string, user model.User) (*Session, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	s := &Session{
		TelegramID: telegramID,
		UserID:     claimID(c.UserID),
		Name:       user.Name,
		Role:       model.ParseRole(c.Tipo),
		Token:      token,
	}
	if s.UserID == "" {
		s.UserID = c.Subject
	}
	if s.UserID == "" {
		s.UserID = user.ID
	}
	if s.Role == "" {
		s.Role = model.ParseRole(c.Role)
	}
	if s.Role == "" {
		s.Role = user.Role
	}
	if s.Name == "" {
		s.Name = c.Nome
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.UTC()
	}

	if s.UserID == "" {
		return nil, fmt.Errorf("%w: no user id", ErrBadToken)
	}
	if s.Role == "" {
		return nil, fmt.Errorf("%w: no role", ErrBadToken)
	}
	return s, nil
}

func claimID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
