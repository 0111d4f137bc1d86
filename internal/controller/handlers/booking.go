package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/booking"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

// handleBookingDate takes a typed date, masked as DD/MM/YYYY, and shows its slots.
func (h *Handlers) handleBookingDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, booking.Roles...)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	masked := timeinput.FormatDateInput(messageText(update))
	day, err := timeinput.ParseDate(masked)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Data inválida. Use o formato DD-MM-AAAA (ex.: 10-05-2025):", nil)
		return
	}
	if day.Before(timeinput.DateOf(h.Today())) {
		h.sendMessage(ctx, b, chatID, "❌ A data deve ser hoje ou uma data futura. Tente de novo:", nil)
		return
	}

	text, kb, err := booking.SlotsView(ctx, h.Handler, sess, day)
	if err != nil {
		h.StateManager.SetState(sess.TelegramID, state.StateNone)
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.SetState(sess.TelegramID, state.StateNone)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// handleBookingTime takes a typed HH:MM and shows the summary. A time that
// looks taken only adds a warning; the backend decides on confirmation.
func (h *Handlers) handleBookingTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, booking.Roles...)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	clock := timeinput.FormatTimeInput(messageText(update))
	if !timeinput.IsValidTime(clock) {
		h.sendMessage(ctx, b, chatID, "❌ Horário inválido. Use o formato HH:MM (ex.: 14:30):", nil)
		return
	}

	warning := ""
	form := h.StateManager.Form(sess.TelegramID)
	if day, err := timeinput.ParseDate(form.Date); err == nil && form.CounterpartyID != "" {
		if slots, err := h.Appointments.DaySlots(ctx, sess, form.CounterpartyID, day); err == nil {
			for _, s := range slots {
				if s.Time == clock && s.Taken {
					warning = "\n\n⚠️ Este horário parece ocupado."
					break
				}
			}
		}
	}

	text, kb, err := booking.SummaryView(h.Handler, sess, clock)
	h.StateManager.SetState(sess.TelegramID, state.StateNone)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendMessage(ctx, b, chatID, text+warning, kb)
}
