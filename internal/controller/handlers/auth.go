package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/account"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
)

const (
	NameMinLength     = 2
	NameMaxLength     = 100
	PasswordMinLength = 6
)

func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := messageText(update)
	if !strings.Contains(email, "@") {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ E-mail inválido. Tente de novo:", nil)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyEmail, email)
	h.StateManager.SetState(telegramID, state.StateLoginPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Digite sua senha:\n\n<i>A mensagem com a senha será apagada.</i>", nil)
}

// handleLoginPassword deletes the password message and logs in.
func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text
	email := h.StateManager.GetString(telegramID, state.KeyEmail)

	h.deleteMessage(ctx, b, update.Message)
	h.StateManager.ClearState(telegramID)

	sess, err := h.Accounts.Login(ctx, telegramID, email, password)
	common.Track(h.Handler, "login", err)
	if err != nil {
		h.Logger.Info("Login failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nUse /login para tentar de novo.", nil)
		return
	}

	text, kb := common.BuildMainMenuScreen(sess)
	h.sendMessage(ctx, b, chatID, "✅ Login realizado!\n\n"+text, kb)
}

func (h *Handlers) handleRegisterName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := messageText(update)
	n := utf8.RuneCountInString(name)
	if n < NameMinLength || n > NameMaxLength {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ O nome deve ter entre 2 e 100 caracteres. Tente de novo:", nil)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyName, name)
	h.StateManager.SetState(telegramID, state.StateRegisterEmail)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Passo 2 de 4: digite seu e-mail:", nil)
}

func (h *Handlers) handleRegisterEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := messageText(update)
	if !strings.Contains(email, "@") {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ E-mail inválido. Tente de novo:", nil)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyEmail, email)
	h.StateManager.SetState(telegramID, state.StateRegisterPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"Passo 3 de 4: escolha uma senha (mínimo 6 caracteres):\n\n<i>A mensagem com a senha será apagada.</i>", nil)
}

func (h *Handlers) handleRegisterPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	h.deleteMessage(ctx, b, update.Message)
	if utf8.RuneCountInString(password) < PasswordMinLength {
		h.sendMessage(ctx, b, chatID, "❌ A senha deve ter pelo menos 6 caracteres. Tente de novo:", nil)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyPassword, password)
	h.StateManager.SetState(telegramID, state.StateRegisterRole)
	h.sendMessage(ctx, b, chatID, "Passo 4 de 4: qual é o tipo da sua conta?", account.RoleKeyboard())
}
