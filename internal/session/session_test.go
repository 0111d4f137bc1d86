package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicocare/psicocare_bot/internal/model"
)

func signed(t *testing.T, c jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("not-the-backend-key"))
	require.NoError(t, err)
	return tok
}

func TestFromToken_ReadsClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{"id": 17, "tipo": "psicologo", "exp": exp.Unix()})

	s, err := FromToken(99, tok, model.User{Name: "Dra. Ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), s.TelegramID)
	assert.Equal(t, "17", s.UserID)
	assert.Equal(t, model.RolePsychologist, s.Role)
	assert.Equal(t, "Dra. Ana", s.Name)
	assert.Equal(t, exp, s.ExpiresAt)
	assert.Equal(t, tok, s.Token)
}

func TestFromToken_FallsBack(t *testing.T) {
	t.Run("sub and role claims", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"sub": "abc", "role": "admin"})
		s, err := FromToken(1, tok, model.User{})
		require.NoError(t, err)
		assert.Equal(t, "abc", s.UserID)
		assert.Equal(t, model.RoleAdmin, s.Role)
		assert.True(t, s.ExpiresAt.IsZero())
	})

	t.Run("login user record", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"iat": 1})
		s, err := FromToken(1, tok, model.User{ID: "u9", Role: model.RolePatient, Name: "Bia"})
		require.NoError(t, err)
		assert.Equal(t, "u9", s.UserID)
		assert.Equal(t, model.RolePatient, s.Role)
	})
}

func TestFromToken_Rejects(t *testing.T) {
	_, err := FromToken(1, "not-a-jwt", model.User{ID: "u", Role: model.RolePatient})
	assert.ErrorIs(t, err, ErrBadToken)

	tok := signed(t, jwt.MapClaims{"tipo": "paciente"})
	_, err = FromToken(1, tok, model.User{})
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, (&Session{}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
}
