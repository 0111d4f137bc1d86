// Package admin handles account management for administrators.
package admin

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

var roles = []model.Role{model.RoleAdmin}

// UsersView renders one page of the user list.
func UsersView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, page int) (string, *models.InlineKeyboardMarkup, error) {
	users, err := h.Admin.Users(ctx, sess)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildUsersScreen(users, page, sess.UserID)
	return text, kb, nil
}

func HandleUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		page, err := common.ParseIntArg(callback.Data, common.AdUsers)
		if err != nil {
			page = 0
		}
		text, kb, err := UsersView(hc.Ctx, h, hc.Session, page)
		if err != nil {
			common.HandleError(hc, err, "list users")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleToggle activates or deactivates a user and stays on that user's page.
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, roles, func(hc *common.HandlerContext) {
		active := true
		id, err := common.ParseArg(callback.Data, common.AdActivate)
		if err != nil {
			active = false
			id, err = common.ParseArg(callback.Data, common.AdDeactivate)
		}
		if err != nil {
			common.HandleError(hc, err, "parse user")
			return
		}

		err = h.Admin.SetActive(hc.Ctx, hc.Session, id, active)
		common.Track(h, "admin_toggle", err)
		if err != nil {
			common.HandleError(hc, err, "set user active")
			return
		}

		users, err := h.Admin.Users(hc.Ctx, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list users")
			return
		}
		hc.Show(common.BuildUsersScreen(users, common.UserPage(users, id), hc.Session.UserID))
		if active {
			hc.Answer("✅ Usuário ativado")
		} else {
			hc.Answer("Usuário desativado")
		}
	})
}
