// Package booking handles the scheduling form and the appointment list.
package booking

import (
	"context"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

// Roles allowed to book.
var Roles = []model.Role{model.RolePatient, model.RolePsychologist}

// The views below are shared by callbacks, which edit the message in place,
// and by commands and typed input, which send a new one.

// CounterpartiesView resets the form and lists who the user can book with.
func CounterpartiesView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup) {
	h.StateManager.ClearForm(sess.TelegramID)
	cps := h.Appointments.Counterparties(ctx, sess)
	return common.BuildCounterpartiesScreen(sess.Role, cps)
}

// CalendarView renders the calendar page stored in the form.
func CalendarView(h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup) {
	sm := h.StateManager
	return common.BuildCalendarScreen(
		sm.GetString(sess.TelegramID, state.KeyCounterpartyName),
		h.Today(),
		sm.GetInt(sess.TelegramID, state.KeyCalendarOffset),
		sm.GetString(sess.TelegramID, state.KeyEditAppointment) != "",
	)
}

// SlotsView stores day in the form and renders its slot keyboard.
func SlotsView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, day timeinput.Date) (string, *models.InlineKeyboardMarkup, error) {
	sm := h.StateManager
	form := sm.Form(sess.TelegramID)
	if form.CounterpartyID == "" {
		return "", nil, common.ErrFormExpired
	}

	slots, err := h.Appointments.DaySlots(ctx, sess, form.CounterpartyID, day)
	if err != nil {
		return "", nil, err
	}

	form.Date = day.String()
	form.Time = ""
	sm.SetForm(sess.TelegramID, form)

	text, kb := common.BuildSlotsScreen(sm.GetString(sess.TelegramID, state.KeyCounterpartyName), day, slots)
	return text, kb, nil
}

// SummaryView stores clock in the form and renders the confirmation step.
func SummaryView(h *callbacktypes.Handler, sess *session.Session, clock string) (string, *models.InlineKeyboardMarkup, error) {
	sm := h.StateManager
	form := sm.Form(sess.TelegramID)
	if form.CounterpartyID == "" || form.Date == "" {
		return "", nil, common.ErrFormExpired
	}
	form.Time = clock
	sm.SetForm(sess.TelegramID, form)

	text, kb := common.BuildSummaryScreen(
		sess.Role,
		sm.GetString(sess.TelegramID, state.KeyCounterpartyName),
		form,
		sm.GetString(sess.TelegramID, state.KeyEditAppointment) != "",
	)
	return text, kb, nil
}

// AppointmentsView loads and renders the appointment list.
func AppointmentsView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup, error) {
	appts, err := h.Appointments.List(ctx, sess)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildAppointmentsScreen(sess.Role, appts)
	return text, kb, nil
}

// DatePrompt asks for a typed date.
func DatePrompt() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.BackButton(common.BkBackCalendar), keyboard.CancelButton(common.BkAbort)).
		Build()
	return "⌨️ Digite a data da consulta no formato DD-MM-AAAA (ex.: 10-05-2025):", kb
}

// TimePrompt asks for a typed time.
func TimePrompt() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.BackButton(common.BkBackCalendar), keyboard.CancelButton(common.BkAbort)).
		Build()
	return "⌨️ Digite o horário no formato HH:MM (ex.: 14:30):", kb
}
