package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
)

// sendMessage sends an HTML message and logs if it fails.
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	if err := common.Send(ctx, b, chatID, text, kb); err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// sendError shows err the way callbacks do.
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	h.sendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
}

// deleteMessage removes a user message, used for passwords.
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		h.Logger.Debug("Failed to delete message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err))
	}
}

// messageText returns the trimmed message text.
func messageText(update *models.Update) string {
	return strings.TrimSpace(update.Message.Text)
}
