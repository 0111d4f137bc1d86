package handlers

import (
	"context"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/care"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
)

const RequestMessageMaxLength = 500

func (h *Handlers) handleRequestMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePatient)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	message := messageText(update)
	if utf8.RuneCountInString(message) > RequestMessageMaxLength {
		h.sendMessage(ctx, b, chatID, "❌ A mensagem deve ter no máximo 500 caracteres. Tente de novo:", nil)
		return
	}

	psychologistID := h.StateManager.GetString(sess.TelegramID, state.KeyPsychologistID)
	text, kb, err := care.SendRequest(ctx, h.Handler, sess, psychologistID, message)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendMessage(ctx, b, chatID, text, kb)
}
