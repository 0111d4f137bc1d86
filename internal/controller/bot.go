package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/handlers"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/observability/metrics"
	"github.com/psicocare/psicocare_bot/internal/service"
)

// Services groups the application services the bot talks to.
type Services struct {
	Accounts     *service.AccountService
	Appointments *service.AppointmentService
	Care         *service.CareService
	Assessments  *service.AssessmentService
	Notes        *service.NoteService
	Admin        *service.AdminService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BotController {
	deps := &callbacktypes.Handler{
		Accounts:     services.Accounts,
		Appointments: services.Appointments,
		Care:         services.Care,
		Assessments:  services.Assessments,
		Notes:        services.Notes,
		Admin:        services.Admin,
		StateManager: state.NewManager(),
		Metrics:      m,
		Logger:       logger,
		Now:          time.Now,
	}

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          logger,
	}
}

// RegisterHandlers registers commands, free text and callback handlers.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":         c.handlers.HandleStart,
		"/help":          c.handlers.HandleHelp,
		"/login":         c.handlers.HandleLogin,
		"/cadastro":      c.handlers.HandleRegister,
		"/sair":          c.handlers.HandleLogout,
		"/consultas":     c.handlers.HandleAppointments,
		"/agendar":       c.handlers.HandleBook,
		"/psicologos":    c.handlers.HandlePsychologists,
		"/solicitacoes":  c.handlers.HandleRequests,
		"/autoavaliacao": c.handlers.HandleAssessment,
		"/usuarios":      c.handlers.HandleUsers,
		"/cancelar":      c.handlers.HandleCancel,
	}
	for pattern, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, bot.MatchTypeExact, handler)
	}

	// dialog steps
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu.
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Menu principal"},
		{Command: "help", Description: "❓ Ajuda"},
		{Command: "login", Description: "🔐 Entrar"},
		{Command: "cadastro", Description: "📝 Criar conta"},
		{Command: "consultas", Description: "🗂 Minhas consultas"},
		{Command: "agendar", Description: "📅 Agendar consulta"},
		{Command: "psicologos", Description: "🔎 Psicólogos disponíveis"},
		{Command: "solicitacoes", Description: "📨 Solicitações (psicólogos)"},
		{Command: "autoavaliacao", Description: "📝 Autoavaliação (pacientes)"},
		{Command: "usuarios", Description: "👤 Usuários (administradores)"},
		{Command: "cancelar", Description: "❌ Cancelar operação"},
		{Command: "sair", Description: "👋 Sair da conta"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start blocks until ctx is done.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
