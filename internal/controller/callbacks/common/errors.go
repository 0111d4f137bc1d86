package common

import (
	"errors"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// Errors raised by handlers
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrWrongRole     = errors.New("action not available for this role")
	ErrNotFound      = errors.New("item not found")
	ErrFormExpired   = errors.New("booking form is gone")
)

// ErrorMessage returns the user-facing text for err.
func ErrorMessage(err error) string {
	var (
		verr  *scheduling.ValidationError
		ierr  *service.InputError
		ferr  *service.FailureError
		apErr *api.Error
	)
	switch {
	case errors.Is(err, session.ErrNoSession):
		return "🔒 Você não está conectado. Use /login para entrar."
	case errors.Is(err, session.ErrExpired):
		return "🔒 Sua sessão expirou. Use /login para entrar novamente."
	case errors.Is(err, session.ErrBadToken):
		return "❌ Não foi possível ler sua sessão. Use /login novamente."
	case errors.Is(err, ErrWrongRole), errors.Is(err, service.ErrForbidden):
		return "⛔ Esta função não está disponível para o seu perfil."
	case errors.Is(err, service.ErrTooManyAttempts):
		return "⏳ Muitas tentativas. Aguarde alguns segundos e tente de novo."
	case errors.Is(err, service.ErrMissingFields):
		return "❌ Preencha todos os campos."
	case errors.Is(err, service.ErrInvalidRole):
		return "❌ Tipo de conta inválido."
	case errors.Is(err, ErrNoMessage):
		return "❌ Erro ao processar a mensagem"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Formato de dados inválido"
	case errors.Is(err, ErrNotFound):
		return "❌ Item não encontrado"
	case errors.Is(err, ErrFormExpired):
		return "⌛ O agendamento expirou. Use /agendar para começar de novo."
	case errors.As(err, &verr):
		return "❌ " + verr.Error()
	case errors.As(err, &ierr):
		return "❌ " + ierr.Reason
	case errors.As(err, &ferr):
		return "❌ " + ferr.Message
	case errors.As(err, &apErr):
		return "❌ " + api.Message(apErr, "Erro no servidor.")
	default:
		return "❌ Ocorreu um erro"
	}
}
