package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// WithSession builds a HandlerContext with the user's session loaded.
// Without a valid session it answers with an alert and returns.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Info("Callback without session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
	hc.Answer("")
}

// WithRole is WithSession restricted to the given roles.
func WithRole(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	roles []model.Role,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireRole(roles...); err != nil {
		h.Logger.Info("Role check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
	hc.Answer("")
}

// HandleError logs err and shows it as an alert.
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Warn("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// Track records the outcome of a user action.
func Track(h *callbacktypes.Handler, action string, err error) {
	h.Metrics.ObserveAction(action, err == nil)
}

// FindAppointment resolves the appointment id in the callback data.
// On failure it has already answered the callback.
func FindAppointment(hc *HandlerContext, prefix string) (*model.Appointment, bool) {
	id, err := ParseArg(hc.Callback.Data, prefix)
	if err != nil {
		HandleError(hc, err, "parse appointment")
		return nil, false
	}
	appt, err := hc.Handler.Appointments.Find(hc.Ctx, hc.Session, id)
	if err != nil {
		HandleError(hc, err, "find appointment")
		return nil, false
	}
	if appt == nil {
		HandleError(hc, ErrNotFound, "find appointment")
		return nil, false
	}
	return appt, true
}
