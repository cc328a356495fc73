package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pureiot/support-api/internal/api/http"
	"github.com/pureiot/support-api/internal/api/http/handlers"
	"github.com/pureiot/support-api/internal/auth"
	"github.com/pureiot/support-api/internal/config"
	"github.com/pureiot/support-api/internal/events"
	"github.com/pureiot/support-api/internal/mail"
	"github.com/pureiot/support-api/internal/observability"
	"github.com/pureiot/support-api/internal/persistence"
	"github.com/pureiot/support-api/internal/repository"
	"github.com/pureiot/support-api/internal/service"
	"github.com/pureiot/support-api/internal/worker"
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

	store := persistence.NewTicketStore(cfg.Store.FilePath, logger)
	localRepo := repository.NewLocalTicketRepository(store)
	externalRepo := repository.NewExternalTicketRepository(pg.PoolHandle())
	facade := repository.NewTicketFacade(externalRepo, localRepo, redis.Client, cfg.Redis.CacheTTL(), logger)

	sender, err := mail.NewSender(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to init mail sender", zap.Error(err))
	}
	signer := auth.NewLinkSigner(cfg.UpdateLink.Secret, cfg.UpdateLink.TTLMinutes)

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := service.NewTicketService(service.TicketDependencies{
		LocalRepo:  localRepo,
		Facade:     facade,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(dispatcher, sender, signer, cfg.App, cfg.SMTP, logger)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics)
	ticketsHandler := handlers.NewTicketsHandler(ticketService)
	updateHandler := handlers.NewUpdateHandler(ticketService, signer)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Tickets: ticketsHandler,
		Update:  updateHandler,
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
