// Package notes handles a psychologist's session notes.
package notes

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

var roles = []model.Role{model.RolePsychologist}

// View loads an appointment's notes.
func View(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, appt *model.Appointment) (string, *models.InlineKeyboardMarkup, error) {
	notes, err := h.Notes.List(ctx, sess, appt.ID)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildNotesScreen(appt, notes)
	return text, kb, nil
}

// HandleList shows the notes of one appointment.
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		appt, ok := common.FindAppointment(hc, common.ApNotes)
		if !ok {
			return
		}
		text, kb, err := View(hc.Ctx, h, hc.Session, appt)
		if err != nil {
			common.HandleError(hc, err, "list notes")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleAdd waits for the note text.
func HandleAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.NtAdd)
		if err != nil {
			common.HandleError(hc, err, "parse appointment")
			return
		}
		hc.SetData(state.KeyAppointmentID, id)
		hc.SetState(state.StateNoteContent)
		hc.Show("✍️ Escreva a anotação desta consulta (até 2000 caracteres):",
			keyboard.NewBuilder().Row(keyboard.CancelButton(common.ApNotes+id)).Build())
	})
}
