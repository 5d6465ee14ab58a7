package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"promfeed/internal/app"
	"promfeed/internal/config"
	"promfeed/internal/worker"
	"promfeed/internal/worker/processors"
	"promfeed/internal/worker/processors/export"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger := app.NewLogger(cfg)

	generator, err := app.NewGenerator(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build feed generator: %v", err)
	}

	processor := processors.NewEventProcessor(generator, export.New(logger), cfg.FeedOutputPath, logger)
	w := worker.New(cfg, logger, processor)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting worker on topic %s...", cfg.KafkaTopic)
	if err := w.Run(ctx); err != nil {
		logger.Error("Worker stopped: %v", err)
	}

	if err := w.Stop(); err != nil {
		logger.Error("Failed to close reader: %v", err)
	}
}
