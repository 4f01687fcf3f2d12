// Command activity-consumer drains directory activity events from
// RabbitMQ into an append-only log file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/config"
	"github.com/iliyamo/venue-booking-directory/internal/logger"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConsumer()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{
		URL:     cfg.Activity.RabbitMQURL,
		Queue:   queue.ActivityQueueName,
		LogPath: cfg.Activity.LogPath,
		Logger:  log,
	}
	log.Info("activity consumer started", zap.String("queue", c.Queue), zap.String("log", c.LogPath))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("activity consumer stopped")
	return nil
}
