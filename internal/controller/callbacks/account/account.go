// Package account finishes registration started by typed input.
package account

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// RoleKeyboard asks which kind of account to create.
func RoleKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🧑 Paciente", CallbackData: common.AuthRole + string(model.RolePatient)}},
			{{Text: "🧠 Psicólogo(a)", CallbackData: common.AuthRole + string(model.RolePsychologist)}},
			{{Text: "❌ Cancelar", CallbackData: common.Menu}},
		},
	}
}

// HandleRole registers the account with the collected name, e-mail and password.
func HandleRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	defer hc.Answer("")

	sm := h.StateManager
	if sm.GetState(hc.TelegramID) != state.StateRegisterRole {
		hc.AnswerAlert(common.ErrorMessage(common.ErrFormExpired))
		return
	}

	arg, err := common.ParseArg(callback.Data, common.AuthRole)
	if err != nil {
		common.HandleError(hc, err, "parse role")
		return
	}
	role := model.ParseRole(arg)

	name := sm.GetString(hc.TelegramID, state.KeyName)
	email := sm.GetString(hc.TelegramID, state.KeyEmail)
	password := sm.GetString(hc.TelegramID, state.KeyPassword)

	u, err := h.Accounts.Register(hc.Ctx, name, email, password, role)
	common.Track(h, "register", err)
	if err != nil {
		// the password is never kept after an attempt
		sm.ClearState(hc.TelegramID)
		h.Logger.Info("Registration failed", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		hc.Show(common.ErrorMessage(err)+"\n\nUse /cadastro para tentar de novo.", nil)
		return
	}
	sm.ClearState(hc.TelegramID)

	hc.Show(fmt.Sprintf("✅ Cadastro concluído, %s!\nTipo de conta: %s\n\nAgora entre com /login.",
		common.Escape(u.Name), formatting.GetRoleName(u.Role)), nil)
}
