package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/config"
	"github.com/Freeeeeet/clinic_bot/internal/controller"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/repository"
	"github.com/Freeeeeet/clinic_bot/internal/service"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

const shutdownTimeout = 10 * time.Second

// NewPool подключается к PostgreSQL и проверяет соединение
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Run собирает зависимости и работает до отмены ctx
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("✅ Connected to database")

	if err := migrate(ctx, pool, logger); err != nil {
		return err
	}

	// Сессии чатов: токен и профиль
	sessions := session.NewStore(repository.NewSessionRepository(pool), logger)
	if err := sessions.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate sessions: %w", err)
	}
	logger.Info("Sessions restored", zap.Int("count", sessions.Count()))

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
	}, logger)

	payments := service.NewPaymentService(repository.NewPaymentReturnRepository(pool), sessions, client, logger)

	deps := &callbacktypes.Handler{
		Sessions:     sessions,
		Auth:         service.NewAuthService(client, sessions, cfg.CaptchaToken, logger),
		Appointments: service.NewAppointmentService(client, logger),
		Booking:      service.NewBookingService(client, nil, logger),
		Schedules:    service.NewScheduleService(client, nil, logger),
		Directory:    service.NewDirectoryService(client, logger),
		Users:        service.NewUserService(client, sessions, logger),
		Payments:     payments,
		StateManager: state.NewAdapter(state.NewManager()),
		Logger:       logger,
	}

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(b, deps, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	scheduler := NewScheduler(sessions, cfg.SessionSweepInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := NewHTTPServer(cfg.HTTPAddr, payments, botController, cfg.BotUsername, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Payment return server stopped", zap.Error(err))
		}
	}()

	// Блокируется до отмены ctx
	if err := botController.Start(ctx); err != nil {
		return err
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	return nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
