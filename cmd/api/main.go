package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/internship-platform/internal/api/http"
	"github.com/spec-kit/internship-platform/internal/api/http/handlers"
	"github.com/spec-kit/internship-platform/internal/auth"
	"github.com/spec-kit/internship-platform/internal/config"
	"github.com/spec-kit/internship-platform/internal/events"
	"github.com/spec-kit/internship-platform/internal/notify"
	"github.com/spec-kit/internship-platform/internal/observability"
	"github.com/spec-kit/internship-platform/internal/persistence"
	"github.com/spec-kit/internship-platform/internal/repository"
	"github.com/spec-kit/internship-platform/internal/service"
	"github.com/spec-kit/internship-platform/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	gateway := persistence.NewGateway(pg.PoolHandle(), logger)
	userRepo := repository.NewUserRepository(gateway)
	messageRepo := repository.NewContactMessageRepository(gateway)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := notify.NewSMTPMailer(cfg.Mail, logger)
	smsNotifier := notify.NewGatewaySMS(cfg.SMS, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	contactService := service.NewContactService(service.ContactDependencies{
		MessageRepo: messageRepo,
		Mailer:      mailer,
		SMS:         smsNotifier,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Config:      cfg.Notification,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	contactHandler := handlers.NewContactHandler(contactService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Contact:        contactHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.ContactRateLimiter(redis, cfg.RateLimit, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
