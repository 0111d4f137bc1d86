package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/account"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/admin"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/assessment"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/booking"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/care"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/notes"
)

// CallbackFunc handles one kind of callback query.
type CallbackFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

// Route dispatches a callback query by its data.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID))

	handler, ok := lookup(data)
	if !ok {
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❓ Comando desconhecido")
		return
	}
	handler(ctx, b, callback, h)
}

func noop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// lookup finds the handler for data. Longer prefixes sharing a stem come first.
func lookup(data string) (CallbackFunc, bool) {
	switch {
	// ===== Navigation =====
	case data == common.Menu:
		return common.HandleMenu, true
	case data == common.Noop:
		return noop, true
	case data == common.SlotTaken:
		return common.HandleSlotTaken, true

	// ===== Account =====
	case strings.HasPrefix(data, common.AuthRole):
		return account.HandleRole, true

	// ===== Booking form =====
	case data == common.BkStart:
		return booking.HandleStart, true
	case strings.HasPrefix(data, common.BkCounterparty):
		return booking.HandleCounterparty, true
	case strings.HasPrefix(data, common.BkPage):
		return booking.HandlePage, true
	case strings.HasPrefix(data, common.BkDay):
		return booking.HandleDay, true
	case strings.HasPrefix(data, common.BkSlot):
		return booking.HandleSlot, true
	case data == common.BkTypeDate:
		return booking.HandleTypeDate, true
	case data == common.BkTypeTime:
		return booking.HandleTypeTime, true
	case data == common.BkImage:
		return booking.HandleImage, true
	case data == common.BkConfirm:
		return booking.HandleConfirm, true
	case data == common.BkAbort:
		return booking.HandleAbort, true
	case data == common.BkBackCalendar:
		return booking.HandleBackCalendar, true

	// ===== Appointments =====
	case data == common.ApList:
		return booking.HandleList, true
	case strings.HasPrefix(data, common.ApEdit):
		return booking.HandleEdit, true
	case strings.HasPrefix(data, common.ApCancelYes):
		return booking.HandleCancelConfirmed, true
	case strings.HasPrefix(data, common.ApCancel):
		return booking.HandleCancel, true
	case strings.HasPrefix(data, common.ApNotes):
		return notes.HandleList, true
	case strings.HasPrefix(data, common.NtAdd):
		return notes.HandleAdd, true

	// ===== Care =====
	case data == common.PsList:
		return care.HandlePsychologists, true
	case strings.HasPrefix(data, common.PsReq):
		return care.HandleRequest, true
	case strings.HasPrefix(data, common.PsSend):
		return care.HandleSendWithoutMessage, true
	case data == common.RqList:
		return care.HandleRequests, true
	case strings.HasPrefix(data, common.RqAccept), strings.HasPrefix(data, common.RqReject):
		return care.HandleAnswerRequest, true
	case data == common.LkList:
		return care.HandleLinks, true
	case strings.HasPrefix(data, common.LkEndYes):
		return care.HandleEndLinkConfirmed, true
	case strings.HasPrefix(data, common.LkEnd):
		return care.HandleEndLink, true
	case strings.HasPrefix(data, common.LkHist):
		return care.HandlePatientHistory, true

	// ===== Assessment =====
	case data == common.AvStart:
		return assessment.HandleStart, true
	case strings.HasPrefix(data, common.AvMood):
		return assessment.HandleMood, true
	case strings.HasPrefix(data, common.AvQuality):
		return assessment.HandleQuality, true
	case data == common.AvSkipNotes:
		return assessment.HandleSkipNotes, true
	case data == common.AvHistory:
		return assessment.HandleHistory, true

	// ===== Admin =====
	case strings.HasPrefix(data, common.AdUsers):
		return admin.HandleUsers, true
	case strings.HasPrefix(data, common.AdActivate), strings.HasPrefix(data, common.AdDeactivate):
		return admin.HandleToggle, true
	}
	return nil, false
}
