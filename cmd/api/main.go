package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ticketwiz/ticketwiz/internal/analysis"
	httptransport "github.com/ticketwiz/ticketwiz/internal/api/http"
	"github.com/ticketwiz/ticketwiz/internal/api/http/handlers"
	"github.com/ticketwiz/ticketwiz/internal/auth"
	"github.com/ticketwiz/ticketwiz/internal/config"
	"github.com/ticketwiz/ticketwiz/internal/events"
	"github.com/ticketwiz/ticketwiz/internal/observability"
	"github.com/ticketwiz/ticketwiz/internal/persistence"
	"github.com/ticketwiz/ticketwiz/internal/repository"
	"github.com/ticketwiz/ticketwiz/internal/service"
	"github.com/ticketwiz/ticketwiz/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	orgRepo := repository.NewOrganizationRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(logger, cfg.Notify)
	worker.StartNotificationWorker(dispatcher, notificationService)

	analyzer := analysis.NewGeminiClient(cfg.Analysis, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo, orgRepo)
	ticketService := service.NewTicketService(ticketRepo, analyzer, dispatcher, metrics, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), metrics)
	publicLimiter := httptransport.NewPublicRateLimiter(redis, cfg.RateLimit, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, cfg.Analysis.APIKey != ""),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
		PublicLimiter:  publicLimiter,
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
