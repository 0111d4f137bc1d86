package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/admin"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/assessment"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/booking"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/care"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

const helpText = "📚 <b>Ajuda</b>\n\n" +
	"/start - Menu principal\n" +
	"/login - Entrar\n" +
	"/cadastro - Criar conta\n" +
	"/sair - Sair da conta\n" +
	"/consultas - Minhas consultas\n" +
	"/agendar - Agendar consulta\n" +
	"/psicologos - Psicólogos disponíveis\n" +
	"/solicitacoes - Solicitações de atendimento (psicólogos)\n" +
	"/autoavaliacao - Registrar autoavaliação (pacientes)\n" +
	"/usuarios - Gerenciar usuários (administradores)\n" +
	"/cancelar - Cancelar a operação atual"

// HandleStart shows the main menu, or the welcome text when logged out.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.ClearState(telegramID)

	sess, err := h.Accounts.Current(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrExpired) {
			h.Logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		sess = nil
	}

	text, kb := common.BuildMainMenuScreen(sess)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel aborts the current dialog.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.StateManager.GetState(telegramID) == state.StateNone && len(h.StateManager.GetAllData(telegramID)) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nenhuma operação em andamento.", nil)
		return
	}

	h.StateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Operação cancelada.\n\nUse /start para voltar ao menu.", nil)
}

func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.ClearState(telegramID)
	h.StateManager.SetState(telegramID, state.StateLoginEmail)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 <b>Entrar</b>\n\nDigite seu e-mail:\n\nPara cancelar use /cancelar", nil)
}

func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.ClearState(telegramID)
	h.StateManager.SetState(telegramID, state.StateRegisterName)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 <b>Cadastro</b>\n\nPasso 1 de 4: qual é o seu nome?\n\nPara cancelar use /cancelar", nil)
}

// HandleLogout forgets the stored session.
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.StateManager.ClearState(telegramID)
	if err := h.Accounts.Logout(ctx, telegramID); err != nil {
		h.Logger.Error("Failed to log out", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Você saiu da sua conta. Até logo!", nil)
}

func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, booking.Roles...)
	if !ok {
		return
	}
	text, kb, err := booking.AppointmentsView(ctx, h.Handler, sess)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, booking.Roles...)
	if !ok {
		return
	}
	h.StateManager.SetState(sess.TelegramID, state.StateNone)
	text, kb := booking.CounterpartiesView(ctx, h.Handler, sess)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandlePsychologists(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}
	text, kb, err := care.PsychologistsView(ctx, h.Handler, sess)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePsychologist)
	if !ok {
		return
	}
	text, kb, err := care.RequestsView(ctx, h.Handler, sess)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleAssessment(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RolePatient)
	if !ok {
		return
	}
	text, kb := assessment.Start(h.Handler, sess)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess, ok := h.requireRole(ctx, b, update, model.RoleAdmin)
	if !ok {
		return
	}
	text, kb, err := admin.UsersView(ctx, h.Handler, sess, 0)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}
