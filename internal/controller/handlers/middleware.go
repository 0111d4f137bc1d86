package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// requireSession loads the sender's session or tells them to log in.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*session.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	sess, err := h.Accounts.Current(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrExpired) {
			h.Logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}
	return sess, true
}

// requireRole is requireSession restricted to roles.
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, update *models.Update, roles ...model.Role) (*session.Session, bool) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}
	for _, r := range roles {
		if sess.Role == r {
			return sess, true
		}
	}
	h.sendError(ctx, b, update.Message.Chat.ID, common.ErrWrongRole)
	return nil, false
}
