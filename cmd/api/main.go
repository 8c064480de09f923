package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/melhem/content-hub/internal/api/http"
	"github.com/melhem/content-hub/internal/api/http/handlers"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/config"
	"github.com/melhem/content-hub/internal/events"
	"github.com/melhem/content-hub/internal/observability"
	"github.com/melhem/content-hub/internal/persistence"
	"github.com/melhem/content-hub/internal/repository"
	"github.com/melhem/content-hub/internal/service"
	"github.com/melhem/content-hub/internal/store"
	"github.com/melhem/content-hub/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	snapshots, err := persistence.OpenSnapshotStore(cfg.Snapshot.Path, logger)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer snapshots.Close()

	caseStore := store.New(store.Options{})
	if err := snapshots.Load(caseStore); err != nil {
		logger.Fatal("failed to load snapshot", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:       accountRepo,
		PasswordResetRepo: resetRepo,
		Profiles:          caseStore,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		Store:      caseStore,
		Dispatcher: dispatcher,
	})
	statsService := service.NewStatsService(caseStore)
	contentService := service.NewContentService(cfg.Content, redis.Client, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	worker.StartSnapshotAutosaver(dispatcher, snapshots, caseStore, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService, caseStore),
		Cases:          handlers.NewCasesHandler(caseService, contentService),
		Notifications:  handlers.NewNotificationsHandler(caseService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()

	if err := snapshots.Save(caseStore); err != nil {
		logger.Error("failed to save snapshot on shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
