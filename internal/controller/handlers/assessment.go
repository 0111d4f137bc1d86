package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/assessment"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// ParseSleepHours accepts "7", "6.5" or "6,5" within 0..24.
func ParseSleepHours(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || v < 0 || v > 24 {
		return 0, false
	}
	return v, true
}

func (h *Handlers) handleSleepHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePatient)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	hours, ok := ParseSleepHours(update.Message.Text)
	if !ok {
		h.sendMessage(ctx, b, chatID, "❌ Informe um número de horas entre 0 e 24 (ex.: 7 ou 6,5):", nil)
		return
	}

	h.StateManager.SetData(sess.TelegramID, state.KeySleepHours, hours)
	h.StateManager.SetState(sess.TelegramID, state.StateAssessmentQuality)
	text, kb := common.BuildQualityScaleScreen()
	h.sendMessage(ctx, b, chatID, text, kb)
}

func (h *Handlers) handleAssessmentNotes(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePatient)
	if !ok {
		return
	}

	text, kb, err := assessment.Submit(ctx, h.Handler, sess, messageText(update))
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}
