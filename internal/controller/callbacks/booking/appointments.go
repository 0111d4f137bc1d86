package booking

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
)

// HandleList shows the appointment list.
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		text, kb, err := AppointmentsView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list appointments")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleEdit pre-fills the form from an appointment and opens the calendar.
func HandleEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		appt, ok := common.FindAppointment(hc, common.ApEdit)
		if !ok {
			return
		}
		if appt.IsCancelled() {
			hc.AnswerAlert("Esta consulta já foi cancelada.")
			return
		}

		sm := h.StateManager
		sm.ClearForm(hc.TelegramID)
		sm.SetForm(hc.TelegramID, scheduling.PrefillForm(*appt, hc.Session.Role))
		sm.SetData(hc.TelegramID, state.KeyEditAppointment, appt.ID)
		sm.SetData(hc.TelegramID, state.KeyCounterpartyName, appt.CounterpartyName(hc.Session.Role))
		sm.SetData(hc.TelegramID, state.KeyCalendarOffset, 0)

		hc.Show(CalendarView(h, hc.Session))
		hc.Answer("Atual: " + scheduling.DisplayInstant(appt.DateTime))
	})
}

// HandleCancel asks for confirmation before cancelling.
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		appt, ok := common.FindAppointment(hc, common.ApCancel)
		if !ok {
			return
		}
		if appt.IsCancelled() {
			hc.AnswerAlert("Esta consulta já foi cancelada.")
			return
		}
		hc.Show(common.BuildCancelConfirmScreen(hc.Session.Role, appt))
	})
}

// HandleCancelConfirmed cancels and re-renders the list from a fresh reload,
// whether or not the cancel went through.
func HandleCancelConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.ApCancelYes)
		if err != nil {
			common.HandleError(hc, err, "parse appointment")
			return
		}

		appts, err := h.Appointments.Cancel(hc.Ctx, hc.Session, id)
		common.Track(h, "cancel", err)
		if appts != nil {
			hc.Show(common.BuildAppointmentsScreen(hc.Session.Role, appts))
		} else {
			hc.Show("⚠️ Não foi possível recarregar as consultas.", keyboard.NewBuilder().
				Row(keyboard.Button("🔄 Tentar novamente", common.ApList)).
				AddMenuButton().
				Build())
		}
		if err != nil {
			common.HandleError(hc, err, "cancel appointment")
			return
		}
		h.Logger.Info("Appointment cancelled from list",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("appointment_id", id))
		hc.Answer("Consulta cancelada")
	})
}
