package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/app"
	"github.com/skillswap/skillswap_api/internal/config"
	"github.com/skillswap/skillswap_api/internal/controller"
	"github.com/skillswap/skillswap_api/internal/meeting"
	"github.com/skillswap/skillswap_api/internal/repository"
	"github.com/skillswap/skillswap_api/internal/service"
	"github.com/skillswap/skillswap_api/internal/transcript"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	store := repository.NewPgStore(pool)
	meetings := meeting.NewClient(cfg.MeetTenantID, cfg.MeetClientID, cfg.MeetClientSecret)
	if !meetings.Configured() {
		logger.Warn("Meeting provider not configured, online sessions get fallback links")
	}

	userService := service.NewUserService(store, logger)
	slotService := service.NewSlotService(store, userService, logger)
	requestService := service.NewRequestService(store, userService, meetings, logger)
	sessionService := service.NewSessionService(store, userService, logger)
	chatService := service.NewChatService(store, userService, logger)
	transcriptService := service.NewTranscriptService(store, userService,
		transcript.Policy{AcceptAMinus: cfg.AcceptAMinus()}, logger)

	router := controller.Router(
		logger,
		controller.NewRequestController(requestService),
		controller.NewSessionController(sessionService),
		controller.NewSlotController(slotService),
		controller.NewTranscriptController(transcriptService),
		controller.NewChatController(chatService),
		controller.NewUserController(userService),
	)

	logger.Info("Starting server",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("environment", cfg.Environment),
	)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
