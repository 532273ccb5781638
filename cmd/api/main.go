package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/api/routes"
	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/handlers"
	mongorepo "github.com/prizeday/contest-backend/internal/repositories/mongodb"
	"github.com/prizeday/contest-backend/internal/services"
	"github.com/prizeday/contest-backend/pkg/mailer"
	"github.com/prizeday/contest-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	participantRepo := mongorepo.NewParticipantRepository(db)
	contestRepo := mongorepo.NewContestRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	orderRepo := mongorepo.NewPaymentOrderRepository(db)

	// Mail gateway and the winner notification worker
	var gateway mailer.Gateway
	if cfg.Mail.MockMail {
		gateway = mailer.NewMockGateway()
		slog.Info("Using mock mail gateway")
	} else {
		gateway = mailer.NewSMTPGateway(cfg)
	}
	dispatcher := services.NewNotificationDispatcher(gateway, winnerRepo, cfg.Mail.QueueSize)
	defer dispatcher.Close()

	// Services
	paymentService := services.NewUPIPaymentService(orderRepo, cfg)
	entryService := services.NewEntryService(participantRepo, userRepo, paymentService, gateway, cfg)
	selectionService := services.NewSelectionService(participantRepo, contestRepo, winnerRepo, userRepo, dispatcher, cfg)
	authService := services.NewAuthService(userRepo, cfg)
	statsService := services.NewStatsService(participantRepo, contestRepo, winnerRepo, userRepo, cfg)
	winnersService := services.NewWinnersService(winnerRepo, contestRepo)
	exportService := services.NewExportService(participantRepo, winnerRepo)

	router := routes.SetupRouter(cfg, &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Entry:   handlers.NewEntryHandler(entryService),
		Payment: handlers.NewPaymentHandler(paymentService),
		Contest: handlers.NewContestHandler(statsService, winnersService, selectionService),
		User:    handlers.NewUserHandler(authService, statsService),
		Export:  handlers.NewExportHandler(exportService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
