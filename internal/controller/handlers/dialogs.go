package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/state"
)

// HandleTextMessage routes free text to the dialog step the chat is in.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// commands have their own handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.StateManager.GetState(telegramID)

	h.Logger.Debug("Text message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Não entendi. Use /start para abrir o menu ou /help para ajuda.", nil)

	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)
	case state.StateRegisterName:
		h.handleRegisterName(ctx, b, update)
	case state.StateRegisterEmail:
		h.handleRegisterEmail(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPassword(ctx, b, update)

	case state.StateBookingDate:
		h.handleBookingDate(ctx, b, update)
	case state.StateBookingTime:
		h.handleBookingTime(ctx, b, update)

	case state.StateRequestMessage:
		h.handleRequestMessage(ctx, b, update)

	case state.StateAssessmentSleepHours:
		h.handleSleepHours(ctx, b, update)
	case state.StateAssessmentNotes:
		h.handleAssessmentNotes(ctx, b, update)

	case state.StateNoteContent:
		h.handleNoteContent(ctx, b, update)

	case state.StateRegisterRole, state.StateAssessmentMood, state.StateAssessmentQuality:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "👆 Use os botões da mensagem acima.", nil)

	default:
		h.Logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.StateManager.ClearState(telegramID)
	}
}
