package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/dream-journal-api/config"
	"github.com/oksasatya/dream-journal-api/internal/worker"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
	"github.com/oksasatya/dream-journal-api/pkg/mailer"
	mailtpl "github.com/oksasatya/dream-journal-api/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

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

	sender := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	handler := worker.EmailHandler(sender, mailtpl.Defaults{
		AppName:     cfg.AppName,
		CompanyName: cfg.CompanyName,
		AppURL:      cfg.AppURL,
		SupportURL:  cfg.SupportURL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prefetch keeps dispatch fair across replicas
	if err := worker.Consume(ctx, ch, cfg.RabbitMQEmailQueue, 16, handler, logger); err != nil {
		helpers.LogError(logger, "email worker stopped", err, nil)
		return
	}
	logger.Info("email worker exited")
}
