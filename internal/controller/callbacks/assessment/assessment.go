// Package assessment handles a patient's self-assessment dialog and history.
package assessment

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
)

var roles = []model.Role{model.RolePatient}

// Start resets the dialog and returns the mood scale.
func Start(h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup) {
	sm := h.StateManager
	sm.DeleteData(sess.TelegramID, state.KeyMood, state.KeySleepHours, state.KeySleepQuality)
	sm.SetState(sess.TelegramID, state.StateAssessmentMood)
	return common.BuildMoodScaleScreen()
}

// Submit records the answers collected in state.
func Submit(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, notes string) (string, *models.InlineKeyboardMarkup, error) {
	sm := h.StateManager
	id := sess.TelegramID

	var hours float64
	if v, ok := sm.GetData(id, state.KeySleepHours); ok {
		hours, _ = v.(float64)
	}
	in := service.AssessmentInput{
		Mood:         sm.GetInt(id, state.KeyMood),
		SleepHours:   hours,
		SleepQuality: sm.GetInt(id, state.KeySleepQuality),
		Notes:        notes,
	}

	err := h.Assessments.Record(ctx, sess, in)
	common.Track(h, "assessment", err)
	if err != nil {
		return "", nil, err
	}
	sm.ClearState(id)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📈 Ver histórico", common.AvHistory)).
		AddMenuButton().
		Build()
	return "✅ Autoavaliação registrada. Obrigado por compartilhar!", kb, nil
}

// HistoryView loads the patient's own history.
func HistoryView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup, error) {
	hist, err := h.Assessments.History(ctx, sess, sess.UserID)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildAssessmentHistoryScreen("", hist, "")
	return text, kb, nil
}

func HandleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		hc.Show(Start(h, hc.Session))
	})
}

// HandleMood stores the mood and asks for the hours slept.
func HandleMood(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		mood, err := common.ParseIntArg(callback.Data, common.AvMood)
		if err != nil || mood < 1 || mood > 5 {
			common.HandleError(hc, common.ErrInvalidFormat, "parse mood")
			return
		}
		hc.SetData(state.KeyMood, mood)
		hc.SetState(state.StateAssessmentSleepHours)
		hc.Show(common.BuildSleepHoursPrompt(mood),
			keyboard.NewBuilder().Row(keyboard.CancelButton(common.Menu)).Build())
	})
}

// HandleQuality stores the sleep quality and asks for notes.
func HandleQuality(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		if hc.State().GetState(hc.TelegramID) != state.StateAssessmentQuality {
			common.HandleError(hc, common.ErrFormExpired, "assessment quality")
			return
		}
		quality, err := common.ParseIntArg(callback.Data, common.AvQuality)
		if err != nil || quality < 1 || quality > 5 {
			common.HandleError(hc, common.ErrInvalidFormat, "parse quality")
			return
		}
		hc.SetData(state.KeySleepQuality, quality)
		hc.SetState(state.StateAssessmentNotes)
		hc.Show(common.BuildAssessmentNotesPrompt())
	})
}

func HandleSkipNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		if hc.State().GetState(hc.TelegramID) != state.StateAssessmentNotes {
			common.HandleError(hc, common.ErrFormExpired, "assessment notes")
			return
		}
		text, kb, err := Submit(hc.Ctx, h, hc.Session, "")
		if err != nil {
			common.HandleError(hc, err, "record assessment")
			return
		}
		hc.Show(text, kb)
	})
}

func HandleHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		text, kb, err := HistoryView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "assessment history")
			return
		}
		hc.Show(text, kb)
	})
}
