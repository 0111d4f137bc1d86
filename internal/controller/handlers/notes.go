package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/notes"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// handleNoteContent saves a session note and shows the updated list.
func (h *Handlers) handleNoteContent(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePsychologist)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	appointmentID := h.StateManager.GetString(sess.TelegramID, state.KeyAppointmentID)

	err := h.Notes.Add(ctx, sess, appointmentID, messageText(update))
	common.Track(h.Handler, "note", err)
	if err != nil {
		// stays in the dialog so the psychologist can fix the text
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.ClearState(sess.TelegramID)

	appt, err := h.Appointments.Find(ctx, sess, appointmentID)
	if err != nil || appt == nil {
		h.Logger.Warn("Appointment not found after note", zap.String("appointment_id", appointmentID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "✅ Anotação salva.", nil)
		return
	}
	text, kb, err := notes.View(ctx, h.Handler, sess, appt)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "✅ Anotação salva.", nil)
		return
	}
	h.sendMessage(ctx, b, chatID, "✅ Anotação salva.\n\n"+text, kb)
}
