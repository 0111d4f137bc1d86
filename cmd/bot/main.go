package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/api"
	"github.com/psicocare/psicocare_bot/internal/app"
	"github.com/psicocare/psicocare_bot/internal/config"
	"github.com/psicocare/psicocare_bot/internal/controller"
	"github.com/psicocare/psicocare_bot/internal/observability/metrics"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting PsicoCare bot",
		zap.String("environment", cfg.Environment),
		zap.String("api", cfg.APIBaseURL))

	// database
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		return err
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// sessions
	var store session.Store = session.NewPGStore(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		store = session.NewRedisCache(store, rdb, logger)
		logger.Info("Session cache enabled", zap.String("redis", cfg.RedisAddr))
	}
	sessions := session.NewManager(store, logger)

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	client, err := api.New(
		api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout},
		api.WithMetrics(m),
		api.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return err
	}

	services := controller.Services{
		Accounts:     service.NewAccountService(client, sessions, logger),
		Appointments: service.NewAppointmentService(client, logger),
		Care:         service.NewCareService(client, logger),
		Assessments:  service.NewAssessmentService(client, logger),
		Notes:        service.NewNoteService(client, logger),
		Admin:        service.NewAdminService(client, logger),
	}

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram error", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	ctrl := controller.NewBotController(b, services, m, logger)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		// the bot still works without the command menu
		logger.Warn("Failed to register command menu", zap.Error(err))
	}

	sweeper := app.NewSweeper(sessions, cfg.SessionSweepInterval, logger, services.Accounts)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	ops := app.NewOpsServer(cfg.OpsAddr, app.NewOpsRouter(pool, reg), logger)
	go ops.Run(ctx)

	return ctrl.Start(ctx)
}
