package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/dream-journal-api/config"
	pginfra "github.com/oksasatya/dream-journal-api/internal/infrastructure/postgres"
	"github.com/oksasatya/dream-journal-api/internal/worker"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

// The stats worker folds activity events published by the API into the
// per-user counters. It needs the Postgres store; the memory driver has no
// shared state to update.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-stats-worker", cfg.Env)

	if !cfg.ActivityEventsEnabled {
		logger.Info("ACTIVITY_EVENTS_ENABLED=false; stats worker disabled")
		return
	}
	if cfg.InMemory() {
		log.Fatal("stats worker requires STORAGE_DRIVER=postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.Pool(), logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	handler := worker.StatsHandler(pginfra.NewUserRepository(pool))
	if err := worker.Consume(ctx, ch, cfg.RabbitMQActivityQueue, 32, handler, logger); err != nil {
		helpers.LogError(logger, "stats worker stopped", err, nil)
		return
	}
	logger.Info("stats worker exited")
}
