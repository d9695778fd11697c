package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/Freeeeeet/classbot/internal/app"
	"github.com/Freeeeeet/classbot/internal/config"
	"go.uber.org/zap"
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

	logger.Sugar().Infow("Starting class bot",
		"environment", cfg.Environment,
		"store", cfg.StoreDriver,
		"timezone", cfg.Timezone,
		"reminder_lead", cfg.ReminderLead.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialise app", zap.Error(err))
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("App stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
