package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexuslan/arena/internal/achievement"
	"github.com/nexuslan/arena/internal/activity"
	"github.com/nexuslan/arena/internal/betting"
	"github.com/nexuslan/arena/internal/bootstrap"
	"github.com/nexuslan/arena/internal/config"
	"github.com/nexuslan/arena/internal/database"
	"github.com/nexuslan/arena/internal/handler"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/marketplace"
	"github.com/nexuslan/arena/internal/server"
)

const shutdownTimeout = 10 * time.Second

// @title Arena Gamification API
// @version 1.0
// @description Badges, fixed-odds betting, coin economy and marketplace for LAN tournaments
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}
	for _, w := range warnings {
		log.Println(w)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(),
		database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime,
		database.DefaultMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	ledgerService := ledger.NewService(repos.Ledger, repos.User, publisher)
	achievementService := achievement.NewService(achievement.DefaultRegistry(), repos.Badge, repos.Stats, repos.User, ledgerService, publisher)
	bettingService := betting.NewService(repos.Betting, repos.User, ledgerService, publisher)
	marketplaceService := marketplace.NewService(repos.Marketplace, repos.User, ledgerService, publisher)
	activityService := activity.NewService(repos.Activity)

	announcer, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           eventBus,
		AchievementService: achievementService,
		ActivityService:    activityService,
		Config:             cfg,
	})
	if err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool,
		ledgerService, achievementService, bettingService, marketplaceService, activityService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server error", "error", err)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Announcer:          announcer,
		ResilientPublisher: publisher,
	})
}
