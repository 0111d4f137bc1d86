package booking

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

// HandleStart opens the counterparty list.
func HandleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		hc.Show(CounterpartiesView(hc.Ctx, h, hc.Session))
	})
}

// HandleCounterparty starts a fresh form for the chosen counterparty.
func HandleCounterparty(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.BkCounterparty)
		if err != nil {
			common.HandleError(hc, err, "parse counterparty")
			return
		}

		var chosen *model.Counterparty
		for _, cp := range h.Appointments.Counterparties(hc.Ctx, hc.Session) {
			if cp.ID == id {
				cp := cp
				chosen = &cp
				break
			}
		}
		if chosen == nil {
			common.HandleError(hc, common.ErrNotFound, "find counterparty")
			return
		}

		sm := h.StateManager
		sm.ClearForm(hc.TelegramID)
		sm.SetForm(hc.TelegramID, scheduling.Form{CounterpartyID: chosen.ID})
		sm.SetData(hc.TelegramID, state.KeyCounterpartyName, chosen.Name)
		sm.SetData(hc.TelegramID, state.KeyCalendarOffset, 0)

		hc.Show(CalendarView(h, hc.Session))
	})
}

// HandlePage moves the calendar by a week.
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		offset, err := common.ParseIntArg(callback.Data, common.BkPage)
		if err != nil {
			common.HandleError(hc, err, "parse calendar page")
			return
		}
		if h.StateManager.Form(hc.TelegramID).CounterpartyID == "" {
			common.HandleError(hc, common.ErrFormExpired, "calendar page")
			return
		}
		if offset < 0 {
			offset = 0
		}
		if offset > common.CalendarMaxOffset {
			offset = common.CalendarMaxOffset
		}
		h.StateManager.SetData(hc.TelegramID, state.KeyCalendarOffset, offset)
		hc.Show(CalendarView(h, hc.Session))
	})
}

// HandleDay shows the slots of the chosen day.
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		arg, err := common.ParseArg(callback.Data, common.BkDay)
		if err != nil {
			common.HandleError(hc, err, "parse day")
			return
		}
		day, err := common.ParseDayArg(arg)
		if err != nil {
			common.HandleError(hc, err, "parse day")
			return
		}
		if day.Before(timeinput.DateOf(h.Today())) {
			hc.AnswerAlert("A data deve ser hoje ou uma data futura.")
			return
		}

		text, kb, err := SlotsView(hc.Ctx, h, hc.Session, day)
		if err != nil {
			common.HandleError(hc, err, "load day slots")
			return
		}
		h.StateManager.SetState(hc.TelegramID, state.StateNone)
		hc.Show(text, kb)
	})
}

// HandleTypeDate switches the form to typed date input.
func HandleTypeDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		if h.StateManager.Form(hc.TelegramID).CounterpartyID == "" {
			common.HandleError(hc, common.ErrFormExpired, "type date")
			return
		}
		hc.SetState(state.StateBookingDate)
		hc.Show(DatePrompt())
	})
}

// HandleTypeTime switches the form to typed time input.
func HandleTypeTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		form := h.StateManager.Form(hc.TelegramID)
		if form.CounterpartyID == "" || form.Date == "" {
			common.HandleError(hc, common.ErrFormExpired, "type time")
			return
		}
		hc.SetState(state.StateBookingTime)
		hc.Show(TimePrompt())
	})
}

// HandleSlot fills the time from the slot keyboard.
func HandleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		arg, err := common.ParseArg(callback.Data, common.BkSlot)
		if err != nil {
			common.HandleError(hc, err, "parse slot")
			return
		}
		clock, err := common.ParseSlotArg(arg)
		if err != nil {
			common.HandleError(hc, err, "parse slot")
			return
		}
		text, kb, err := SummaryView(h, hc.Session, clock)
		if err != nil {
			common.HandleError(hc, err, "select slot")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleImage sends the chosen day as a picture.
func HandleImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		form := h.StateManager.Form(hc.TelegramID)
		day, err := timeinput.ParseDate(form.Date)
		if form.CounterpartyID == "" || err != nil {
			common.HandleError(hc, common.ErrFormExpired, "day image")
			return
		}

		slots, err := h.Appointments.DaySlots(hc.Ctx, hc.Session, form.CounterpartyID, day)
		if err != nil {
			common.HandleError(hc, err, "load day slots")
			return
		}
		name := hc.GetString(state.KeyCounterpartyName)
		png, err := common.RenderDayImage(day, slots, name, h.Today())
		if err == nil {
			err = hc.SendPhoto("dia.png", png, "🗓 "+day.Display())
		}
		if err != nil {
			h.Logger.Warn("Failed to send day image", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
			hc.AnswerAlert("Não foi possível gerar a imagem do dia.")
			return
		}
		hc.Answer("🖼")
	})
}

// HandleConfirm submits the form, as a new booking or as a reschedule when
// an appointment is being edited. On failure the form is kept.
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		res, editing, err := Submit(hc.Ctx, h, hc.Session)
		if err != nil {
			var verr *scheduling.ValidationError
			if !errors.As(err, &verr) {
				h.Logger.Info("Booking not saved", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
			}
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Show(common.BuildBookingDoneScreen(res, editing))
		hc.Answer("✅")
	})
}

// Submit books or reschedules from the stored form and clears it on success.
// editing reports which of the two was attempted.
func Submit(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (res *service.BookingResult, editing bool, err error) {
	sm := h.StateManager
	id := sess.TelegramID
	form := sm.Form(id)
	editID := sm.GetString(id, state.KeyEditAppointment)
	editing = editID != ""

	if editing {
		appt, findErr := h.Appointments.Find(ctx, sess, editID)
		if findErr != nil {
			return nil, true, findErr
		}
		if appt == nil {
			return nil, true, common.ErrNotFound
		}
		res, err = h.Appointments.Reschedule(ctx, sess, *appt, form)
		common.Track(h, "reschedule", err)
	} else {
		cps := []model.Counterparty{{ID: form.CounterpartyID, Name: sm.GetString(id, state.KeyCounterpartyName)}}
		res, err = h.Appointments.Book(ctx, sess, form, cps)
		common.Track(h, "book", err)
	}
	if err != nil {
		return nil, editing, err
	}

	sm.ClearForm(id)
	return res, editing, nil
}

// HandleAbort discards the form.
func HandleAbort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	h.StateManager.ClearForm(hc.TelegramID)
	hc.ClearState()
	hc.Show("Agendamento cancelado.", keyboard.NewBuilder().AddMenuButton().Build())
	hc.Answer("")
}

// HandleBackCalendar returns from the slots, the prompts or the summary to the calendar.
func HandleBackCalendar(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, Roles, func(hc *common.HandlerContext) {
		form := h.StateManager.Form(hc.TelegramID)
		if form.CounterpartyID == "" {
			common.HandleError(hc, common.ErrFormExpired, "back to calendar")
			return
		}
		form.Time = ""
		h.StateManager.SetForm(hc.TelegramID, form)
		hc.SetState(state.StateNone)
		hc.Show(CalendarView(h, hc.Session))
	})
}
