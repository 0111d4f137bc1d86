package common

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// HandleMenu drops any dialog in progress and shows the main menu in place.
func HandleMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	err := hc.LoadSession()
	if err != nil && !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrExpired) {
		HandleError(hc, err, "menu")
		return
	}

	hc.Show(BuildMainMenuScreen(hc.Session))
	hc.Answer("")
}

// HandleSlotTaken answers a press on a struck-through slot.
func HandleSlotTaken(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	AnswerCallbackAlert(ctx, b, callback.ID, "Horário indisponível")
}
