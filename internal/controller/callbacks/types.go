package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
)

// Handler wraps callbacktypes.Handler with the update entry point.
type Handler struct {
	*callbacktypes.Handler
}

func NewHandler(inner *callbacktypes.Handler) *Handler {
	return &Handler{Handler: inner}
}

// HandleCallbackQuery is the bot's callback query handler.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID))

	Route(ctx, b, callback, h.Handler)
}
